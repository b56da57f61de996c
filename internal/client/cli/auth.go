package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
)

// Register prompts for the account fields and creates a viewer account. The
// emailed code is then entered with Verify.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &r.FirstName},
		{"Last name", &r.LastName},
		{"Username", &r.UserName},
		{"Email", &r.Email},
		{"Phone number (10 digits)", &r.PhoneNumber},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	pw, err := getPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	r.Password = string(pw)

	if err := a.Auth.Register(ctx, r); err != nil {
		return err
	}
	a.printf("Registered. Enter the code sent to %s with 'verify'.\n", r.Email)
	return nil
}

// Verify confirms the registration code and signs in.
func (a *App) Verify(ctx context.Context) error {
	code, err := a.ask("Registration code")
	if err != nil {
		return err
	}
	u, err := a.Auth.VerifyRegistration(ctx, code)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", u.FirstName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	name, err := a.ask("Username")
	if err != nil {
		return err
	}
	pw, err := getPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	u, err := a.Auth.Login(ctx, models.Credentials{UserName: name, Password: string(pw)})
	if err != nil {
		return err
	}
	a.printf("Login successful, signed in as %s\n", u.UserName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// Forgot walks through the password reset: send code, verify it, set the
// new password.
func (a *App) Forgot(ctx context.Context) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	if err := a.Auth.SendPasswordOTP(ctx, email); err != nil {
		return err
	}

	code, err := a.ask("Code from the email")
	if err != nil {
		return err
	}
	if err := a.Auth.VerifyPasswordOTP(ctx, email, code); err != nil {
		return err
	}

	pw, err := getPassword(a.in, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	confirm, err := getPassword(a.in, "Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	err = a.Auth.ResetPassword(ctx, models.PasswordReset{Email: email, Password: string(pw), Confirm: string(confirm)})
	if err != nil {
		return err
	}
	a.printf("Password changed, you can log in now\n")
	return nil
}

// Profile shows the cached profile and offers to edit it. Blank answers keep
// the current values.
func (a *App) Profile(ctx context.Context) error {
	u := a.Session.User()
	a.printf("%s %s (%s)\n  email: %s\n  phone: %s\n  zip:   %s\n  role:  %s\n",
		u.FirstName, u.LastName, u.UserName, u.Email, u.PhoneNumber, u.Zipcode, a.Session.Role())

	edit, err := Confirm(a.in, "Edit profile?", a.out)
	if err != nil || !edit {
		return err
	}

	p := models.ProfileUpdate{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber.String(),
		Zipcode:     u.Zipcode.String(),
	}
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &p.FirstName},
		{"Last name", &p.LastName},
		{"Username", &p.UserName},
		{"Email", &p.Email},
		{"Phone number", &p.PhoneNumber},
		{"Zip code", &p.Zipcode},
	}
	for _, f := range fields {
		v, err := a.ask(fmt.Sprintf("%s [%s]", f.prompt, *f.dst))
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	path, err := a.ask("Profile image path (blank to keep)")
	if err != nil {
		return err
	}
	if path != "" {
		photo, err := loadPhoto(path, "")
		if err != nil {
			return err
		}
		p.ProfileImage = &photo
	}

	if _, err := a.Auth.UpdateProfile(ctx, p); err != nil {
		return err
	}
	a.printf("Profile updated\n")
	return nil
}
