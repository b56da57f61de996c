package services

import (
	"context"

	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/paulmach/orb"
)

// fakeClient implements client.Client for service tests. Methods a test does
// not expect fall through to the nil embedded interface and panic.
type fakeClient struct {
	client.Client

	RegisterErr  error
	LastRegister models.Registration

	VerifyRet   models.LoginResult
	VerifyErr   error
	LastVerify  [2]string
	LoginRet    models.LoginResult
	LoginErr    error
	LoginCalls  int
	PasswordErr error
	PasswordOps []string

	ProfileRet models.User
	ProfileErr error

	Buildings    []models.Building
	BuildingsErr error
	ListCalls    int
	AddErr       error
	Added        []models.BuildingForm
	UpdateErr    error
	Updated      []models.BuildingForm
	OTPErr       error
	OTPSent      []models.ID

	Galleries  map[models.ID]models.LevelGallery
	GalleryErr map[models.ID]error

	FAQ      models.FAQCategories
	FAQErr   error
	FAQCalls int
}

func (f *fakeClient) Register(_ context.Context, r models.Registration) error {
	f.LastRegister = r
	return f.RegisterErr
}

func (f *fakeClient) VerifyRegisterOTP(_ context.Context, email, otp string) (models.LoginResult, error) {
	f.LastVerify = [2]string{email, otp}
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) Login(context.Context, models.Credentials) (models.LoginResult, error) {
	f.LoginCalls++
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) SendPasswordOTP(_ context.Context, email string) error {
	f.PasswordOps = append(f.PasswordOps, "send:"+email)
	return f.PasswordErr
}

func (f *fakeClient) VerifyPasswordOTP(_ context.Context, email, otp string) error {
	f.PasswordOps = append(f.PasswordOps, "verify:"+email+":"+otp)
	return f.PasswordErr
}

func (f *fakeClient) ResetPassword(_ context.Context, email, password string) error {
	f.PasswordOps = append(f.PasswordOps, "reset:"+email+":"+password)
	return f.PasswordErr
}

func (f *fakeClient) UpdateProfile(context.Context, models.ProfileUpdate) (models.User, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) GetBuildings(context.Context) ([]models.Building, error) {
	f.ListCalls++
	return f.Buildings, f.BuildingsErr
}

func (f *fakeClient) AddBuilding(_ context.Context, bf models.BuildingForm) error {
	f.Added = append(f.Added, bf)
	return f.AddErr
}

func (f *fakeClient) UpdateBuilding(_ context.Context, bf models.BuildingForm) error {
	f.Updated = append(f.Updated, bf)
	return f.UpdateErr
}

func (f *fakeClient) SendBuildingOTP(_ context.Context, id models.ID) error {
	f.OTPSent = append(f.OTPSent, id)
	return f.OTPErr
}

func (f *fakeClient) VerifyBuildingOTP(context.Context, models.ID, string) error {
	return f.OTPErr
}

func (f *fakeClient) GetLevelGallery(_ context.Context, _, floorID models.ID) (models.LevelGallery, error) {
	if err := f.GalleryErr[floorID]; err != nil {
		return models.LevelGallery{}, err
	}
	return f.Galleries[floorID], nil
}

func (f *fakeClient) GetFAQ(context.Context) (models.FAQCategories, error) {
	f.FAQCalls++
	return f.FAQ, f.FAQErr
}

type fakeGeocoder struct {
	places  []models.Place
	queries []string
}

func (g *fakeGeocoder) Search(_ context.Context, q string, _ int) ([]models.Place, error) {
	g.queries = append(g.queries, q)
	return g.places, nil
}

func (g *fakeGeocoder) Reverse(context.Context, orb.Point) (models.Place, error) {
	return models.Place{Formatted: "Unknown location"}, nil
}
