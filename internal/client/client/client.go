package client

import (
	"context"

	"github.com/dmitrijs2005/firemap/internal/client/models"
)

// TokenSource supplies the bearer token for authenticated calls. It returns
// common.ErrNoSession when nobody is logged in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client interface {
	// Accounts.
	Register(ctx context.Context, r models.Registration) error
	VerifyRegisterOTP(ctx context.Context, email, otp string) (models.LoginResult, error)
	Login(ctx context.Context, c models.Credentials) (models.LoginResult, error)
	SendPasswordOTP(ctx context.Context, email string) error
	VerifyPasswordOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password string) error
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) (models.User, error)

	// Buildings.
	GetBuildings(ctx context.Context) ([]models.Building, error)
	AddBuilding(ctx context.Context, f models.BuildingForm) error
	UpdateBuilding(ctx context.Context, f models.BuildingForm) error
	SendBuildingOTP(ctx context.Context, buildingID models.ID) error
	VerifyBuildingOTP(ctx context.Context, buildingID models.ID, otp string) error

	// Floor layout.
	GetIconCatalog(ctx context.Context) ([]models.IconCategory, error)
	GetPlacedIcons(ctx context.Context, ref models.LevelRef) ([]models.DragIcon, error)
	SavePlacedIcons(ctx context.Context, ref models.LevelRef, icons []models.IconPlacement) error
	DeletePlacedIcon(ctx context.Context, dragIconID models.ID) error
	SendLayoutOTP(ctx context.Context, buildingID models.ID) error
	VerifyLayoutOTP(ctx context.Context, buildingID models.ID, otp string) error
	UploadLevelPhotos(ctx context.Context, ref models.LevelRef, photos []models.Photo) error

	// Gallery and help.
	GetLevelGallery(ctx context.Context, buildingID, floorID models.ID) (models.LevelGallery, error)
	GetFAQ(ctx context.Context) (models.FAQCategories, error)
}
