package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/client/session"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/dmitrijs2005/firemap/internal/validatex"
)

const (
	RegisterOTPDigits = 6
	PasswordOTPDigits = 4
)

// AuthService covers registration, login and account recovery.
//
// Contract:
//   - Register: create an account; the email then waits for VerifyRegistration.
//   - VerifyRegistration: confirm the emailed code and sign in.
//   - Login / Logout: open or drop the session.
//   - SendPasswordOTP, VerifyPasswordOTP, ResetPassword: forgot-password flow.
//   - UpdateProfile: change profile fields and refresh the cached user.
//
// Input is validated before any remote call; violations come back as
// validatex.ValidationErrors.
type AuthService interface {
	Register(ctx context.Context, r models.Registration) error
	VerifyRegistration(ctx context.Context, otp string) (models.User, error)
	Login(ctx context.Context, c models.Credentials) (models.User, error)
	Logout(ctx context.Context) error
	SendPasswordOTP(ctx context.Context, email string) error
	VerifyPasswordOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, r models.PasswordReset) error
	UpdateProfile(ctx context.Context, p models.ProfileUpdate) (models.User, error)
}

type authService struct {
	client  client.Client
	session *session.Session
	log     logging.Logger
}

func NewAuthService(c client.Client, s *session.Session, log logging.Logger) AuthService {
	return &authService{client: c, session: s, log: log}
}

func (a *authService) Register(ctx context.Context, r models.Registration) error {
	r.Email = strings.TrimSpace(r.Email)
	r.Role = common.RoleViewer
	if err := validatex.Struct(r); err != nil {
		return err
	}
	if err := a.client.Register(ctx, r); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return a.session.SetPendingEmail(ctx, r.Email)
}

func (a *authService) VerifyRegistration(ctx context.Context, otp string) (models.User, error) {
	otp = strings.TrimSpace(otp)
	if err := validatex.OTP(otp, RegisterOTPDigits); err != nil {
		return models.User{}, err
	}
	email, err := a.session.PendingEmail()
	if err != nil {
		return models.User{}, err
	}

	res, err := a.client.VerifyRegisterOTP(ctx, email, otp)
	if err != nil {
		return models.User{}, fmt.Errorf("verify registration: %w", err)
	}
	if err := a.session.SignIn(ctx, res); err != nil {
		return models.User{}, err
	}
	a.log.Info(ctx, "registration verified", "user", res.User.UserName)
	return res.User, nil
}

func (a *authService) Login(ctx context.Context, c models.Credentials) (models.User, error) {
	c.UserName = strings.TrimSpace(c.UserName)
	if err := validatex.Struct(c); err != nil {
		return models.User{}, err
	}

	res, err := a.client.Login(ctx, c)
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	if err := a.session.SignIn(ctx, res); err != nil {
		return models.User{}, err
	}
	a.log.Info(ctx, "logged in", "user", res.User.UserName, "role", res.User.Role)
	return res.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) SendPasswordOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validatex.Struct(models.OTPCheck{Email: email}); err != nil {
		return err
	}
	if err := a.client.SendPasswordOTP(ctx, email); err != nil {
		return fmt.Errorf("send password code: %w", err)
	}
	return nil
}

func (a *authService) VerifyPasswordOTP(ctx context.Context, email, otp string) error {
	email, otp = strings.TrimSpace(email), strings.TrimSpace(otp)
	if err := validatex.Struct(models.OTPCheck{Email: email}); err != nil {
		return err
	}
	if err := validatex.OTP(otp, PasswordOTPDigits); err != nil {
		return err
	}
	if err := a.client.VerifyPasswordOTP(ctx, email, otp); err != nil {
		return fmt.Errorf("verify password code: %w", err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, r models.PasswordReset) error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validatex.Struct(r); err != nil {
		return err
	}
	if err := a.client.ResetPassword(ctx, r.Email, r.Password); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (a *authService) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (models.User, error) {
	if err := validatex.Struct(p); err != nil {
		return models.User{}, err
	}
	u, err := a.client.UpdateProfile(ctx, p)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	if err := a.session.SetUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
