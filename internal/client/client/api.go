package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/firemap/internal/client/models"
)

func post(path string, auth bool, body any) request {
	return request{method: http.MethodPost, path: path, auth: auth, body: body}
}

func get(path string) request {
	return request{method: http.MethodGet, path: path, auth: true}
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	_, err := c.do(ctx, post(c.endpoints.Register, false, r))
	return err
}

func (c *HTTPClient) VerifyRegisterOTP(ctx context.Context, email, otp string) (models.LoginResult, error) {
	env, err := c.do(ctx, post(c.endpoints.VerifyRegisterOTP, false, models.OTPCheck{Email: email, OTP: otp}))
	if err != nil {
		return models.LoginResult{}, err
	}
	res := models.LoginResult{Token: env.Token}
	// Some deployments return the user here, some return nothing.
	_ = env.decode(&res.User)
	return res, nil
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (models.LoginResult, error) {
	env, err := c.do(ctx, post(c.endpoints.Login, false, cr))
	if err != nil {
		return models.LoginResult{}, err
	}
	res := models.LoginResult{Token: env.Token}
	if err := env.decode(&res.User); err != nil {
		return models.LoginResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) SendPasswordOTP(ctx context.Context, email string) error {
	_, err := c.do(ctx, post(c.endpoints.SendPasswordOTP, false, map[string]string{"email": email}))
	return err
}

func (c *HTTPClient) VerifyPasswordOTP(ctx context.Context, email, otp string) error {
	_, err := c.do(ctx, post(c.endpoints.VerifyPasswordOTP, false, models.OTPCheck{Email: email, OTP: otp}))
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, post(c.endpoints.ResetPassword, false, map[string]string{"email": email, "password": password}))
	return err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (models.User, error) {
	f := newForm().
		field("zipcode", p.Zipcode).
		field("first_name", p.FirstName).
		field("last_name", p.LastName).
		field("phone_number", p.PhoneNumber).
		field("user_name", p.UserName)
	if p.ProfileImage != nil {
		if err := f.photo("profile_image", "profile", *p.ProfileImage); err != nil {
			return models.User{}, err
		}
	}

	env, err := c.do(ctx, post(c.endpoints.UpdateProfile, true, f))
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := env.decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) GetBuildings(ctx context.Context) ([]models.Building, error) {
	env, err := c.do(ctx, get(c.endpoints.GetBuildings))
	if err != nil {
		return nil, err
	}
	var out []models.Building
	if err := env.decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddBuilding(ctx context.Context, bf models.BuildingForm) error {
	f, err := buildingForm(bf)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, post(c.endpoints.AddBuilding, true, f))
	return err
}

func (c *HTTPClient) UpdateBuilding(ctx context.Context, bf models.BuildingForm) error {
	bf.Editing = true
	f, err := buildingForm(bf)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, post(c.endpoints.UpdateBuilding, true, f))
	return err
}

// buildingForm encodes the add/edit submission. Edits carry entity ids so
// the server can match existing rows, and send an empty image field for rows
// without a new picture to keep the parallel arrays aligned.
func buildingForm(bf models.BuildingForm) (*formBody, error) {
	f := newForm()
	if bf.Editing {
		f.field("building_id", bf.ID.String())
	}
	f.field("building_name", bf.Name).
		field("building_address", bf.Address).
		field("zipcode", bf.Zipcode).
		field("total_floor", strconv.Itoa(bf.TotalFloors)).
		field("total_basement", strconv.Itoa(bf.TotalBasements))
	if bf.SuiteNumber != "" || !bf.Editing {
		f.field("suite_number", bf.SuiteNumber)
	}
	if bf.Lat != nil && bf.Lon != nil {
		f.field("lat", models.FormatCoord(*bf.Lat)).field("lon", models.FormatCoord(*bf.Lon))
	}

	rows := func(kind string, list []models.LevelRow) error {
		for _, r := range list {
			if bf.Editing {
				f.field(kind+"_id[]", r.ID.String())
			}
			f.field(kind+"_name[]", r.Name)
			switch {
			case r.Image != nil:
				if err := f.photo(kind+"_image[]", kind, *r.Image); err != nil {
					return err
				}
			case bf.Editing:
				f.field(kind+"_image[]", "")
			}
		}
		return nil
	}
	if err := rows("floor", bf.Floors); err != nil {
		return nil, err
	}
	if err := rows("basement", bf.Basements); err != nil {
		return nil, err
	}
	return f, nil
}

type buildingOTP struct {
	BuildingID models.ID `json:"building_id"`
	OTP        string    `json:"otp,omitempty"`
}

func (c *HTTPClient) SendBuildingOTP(ctx context.Context, buildingID models.ID) error {
	_, err := c.do(ctx, post(c.endpoints.SendBuildingOTP, true, buildingOTP{BuildingID: buildingID}))
	return err
}

func (c *HTTPClient) VerifyBuildingOTP(ctx context.Context, buildingID models.ID, otp string) error {
	_, err := c.do(ctx, post(c.endpoints.VerifyBuildingOTP, true, buildingOTP{BuildingID: buildingID, OTP: otp}))
	return err
}

func (c *HTTPClient) GetIconCatalog(ctx context.Context) ([]models.IconCategory, error) {
	env, err := c.do(ctx, get(c.endpoints.GetIcons))
	if err != nil {
		return nil, err
	}
	var out []models.IconCategory
	if err := env.decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

type levelQuery struct {
	BuildingID models.ID  `json:"building_id"`
	FloorID    *models.ID `json:"floor_id"`
	BasementID *models.ID `json:"basement_id"`
}

func newLevelQuery(ref models.LevelRef) levelQuery {
	q := levelQuery{BuildingID: ref.BuildingID}
	id := ref.LevelID
	if ref.Kind == models.LevelBasement {
		q.BasementID = &id
	} else {
		q.FloorID = &id
	}
	return q
}

func (c *HTTPClient) GetPlacedIcons(ctx context.Context, ref models.LevelRef) ([]models.DragIcon, error) {
	env, err := c.do(ctx, post(c.endpoints.GetPlacedIcons, true, newLevelQuery(ref)))
	if err != nil {
		return nil, err
	}
	var out []models.DragIcon
	if err := env.decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func levelForm(ref models.LevelRef) *formBody {
	f := newForm().field("building_id", ref.BuildingID.String())
	if ref.Kind == models.LevelBasement {
		return f.field("basement_id", ref.LevelID.String())
	}
	return f.field("floor_id", ref.LevelID.String())
}

func (c *HTTPClient) SavePlacedIcons(ctx context.Context, ref models.LevelRef, icons []models.IconPlacement) error {
	f := levelForm(ref)
	for _, ic := range icons {
		f.field("icon_id[]", ic.IconID.String()).
			field("latitude[]", models.FormatCoord(ic.Location.Lat())).
			field("longitude[]", models.FormatCoord(ic.Location.Lon())).
			field("message[]", ic.Label)
	}
	_, err := c.do(ctx, post(c.endpoints.SavePlacedIcons, true, f))
	return err
}

func (c *HTTPClient) DeletePlacedIcon(ctx context.Context, dragIconID models.ID) error {
	body := map[string]models.ID{"drag_icon_id": dragIconID}
	_, err := c.do(ctx, post(c.endpoints.DeletePlacedIcon, true, body))
	return err
}

func (c *HTTPClient) SendLayoutOTP(ctx context.Context, buildingID models.ID) error {
	_, err := c.do(ctx, post(c.endpoints.SendLayoutOTP, true, buildingOTP{BuildingID: buildingID}))
	return err
}

func (c *HTTPClient) VerifyLayoutOTP(ctx context.Context, buildingID models.ID, otp string) error {
	_, err := c.do(ctx, post(c.endpoints.VerifyLayoutOTP, true, buildingOTP{BuildingID: buildingID, OTP: otp}))
	return err
}

// UploadLevelPhotos attaches photos to a floor or basement. Basement captions
// travel in basementmessage[], floor captions in message[].
func (c *HTTPClient) UploadLevelPhotos(ctx context.Context, ref models.LevelRef, photos []models.Photo) error {
	f := levelForm(ref)
	imageField, captionField := "floor_image[]", "message[]"
	if ref.Kind == models.LevelBasement {
		imageField, captionField = "basement_image[]", "basementmessage[]"
	}
	for _, p := range photos {
		if err := f.photo(imageField, string(ref.Kind)+"_img", p); err != nil {
			return err
		}
		f.field(captionField, p.Caption)
	}
	_, err := c.do(ctx, post(c.endpoints.AddLevelDetail, true, f))
	return err
}

func (c *HTTPClient) GetLevelGallery(ctx context.Context, buildingID, floorID models.ID) (models.LevelGallery, error) {
	body := map[string]models.ID{"building_id": buildingID, "floor_id": floorID}
	env, err := c.do(ctx, post(c.endpoints.GetLevelGallery, true, body))
	if err != nil {
		return models.LevelGallery{}, err
	}
	var data struct {
		Floors []models.LevelGallery `json:"floors"`
	}
	if err := env.decode(&data); err != nil {
		return models.LevelGallery{}, err
	}
	if len(data.Floors) == 0 {
		return models.LevelGallery{}, nil
	}
	return data.Floors[0], nil
}

func (c *HTTPClient) GetFAQ(ctx context.Context) (models.FAQCategories, error) {
	env, err := c.do(ctx, get(c.endpoints.GetFAQ))
	if err != nil {
		return nil, err
	}
	var out models.FAQCategories
	if err := env.decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Client = (*HTTPClient)(nil)
