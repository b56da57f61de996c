package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/client/session"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/dmitrijs2005/firemap/internal/validatex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(fc *fakeClient) (AuthService, *session.Session) {
	s := session.New(nil)
	return NewAuthService(fc, s, logging.Nop()), s
}

func validRegistration() models.Registration {
	return models.Registration{
		FirstName:   "Ada",
		LastName:    "Byron",
		UserName:    "ada_b",
		Email:       " ada@example.com ",
		PhoneNumber: "0123456789",
		Password:    "secret1",
		Role:        "Editor",
	}
}

func TestAuth_RegisterThenVerify(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{VerifyRet: models.LoginResult{
		Token: "tok",
		User:  models.User{ID: "1", UserName: "ada_b", Role: common.RoleViewer},
	}}
	auth, s := newAuth(fc)

	require.NoError(t, auth.Register(ctx, validRegistration()))
	assert.Equal(t, common.RoleViewer, fc.LastRegister.Role)
	email, err := s.PendingEmail()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	u, err := auth.VerifyRegistration(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, "ada_b", u.UserName)
	assert.Equal(t, [2]string{"ada@example.com", "123456"}, fc.LastVerify)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	_, err = s.PendingEmail()
	assert.ErrorIs(t, err, session.ErrNoPendingEmail)
}

func TestAuth_RegisterValidation(t *testing.T) {
	fc := &fakeClient{}
	auth, _ := newAuth(fc)

	r := validRegistration()
	r.UserName = "a!"
	r.PhoneNumber = "12345"
	r.Password = "abc"
	err := auth.Register(context.Background(), r)

	var verrs validatex.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "UserName")
	assert.Contains(t, verrs, "PhoneNumber")
	assert.Contains(t, verrs, "Password")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, fc.LastRegister.UserName)
}

func TestAuth_VerifyRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong length", func(t *testing.T) {
		auth, s := newAuth(&fakeClient{})
		require.NoError(t, s.SetPendingEmail(ctx, "a@b.co"))
		_, err := auth.VerifyRegistration(ctx, "1234")
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("no pending email", func(t *testing.T) {
		auth, _ := newAuth(&fakeClient{})
		_, err := auth.VerifyRegistration(ctx, "123456")
		assert.ErrorIs(t, err, session.ErrNoPendingEmail)
	})

	t.Run("rejected keeps pending email", func(t *testing.T) {
		fc := &fakeClient{VerifyErr: &client.APIError{Status: 200, Message: "Invalid OTP"}}
		auth, s := newAuth(fc)
		require.NoError(t, s.SetPendingEmail(ctx, "a@b.co"))
		_, err := auth.VerifyRegistration(ctx, "123456")
		require.ErrorIs(t, err, client.ErrRejected)
		assert.False(t, s.LoggedIn())
		email, err := s.PendingEmail()
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", email)
	})
}

func TestAuth_LoginLogout(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{LoginRet: models.LoginResult{Token: "t", User: models.User{UserName: "ada_b", Role: "Editor"}}}
	auth, s := newAuth(fc)

	u, err := auth.Login(ctx, models.Credentials{UserName: " ada_b ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ada_b", u.UserName)
	assert.True(t, s.LoggedIn())
	assert.True(t, s.IsEditor())

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, s.LoggedIn())
	_, err = s.Token(ctx)
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestAuth_LoginFailures(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{}
	auth, _ := newAuth(fc)
	_, err := auth.Login(ctx, models.Credentials{UserName: "ada_b", Password: "123"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Zero(t, fc.LoginCalls)

	fc = &fakeClient{LoginErr: client.ErrUnauthorized}
	auth, s := newAuth(fc)
	_, err = auth.Login(ctx, models.Credentials{UserName: "ada_b", Password: "secret1"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, s.LoggedIn())
}

func TestAuth_PasswordFlow(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	auth, _ := newAuth(fc)

	require.ErrorIs(t, auth.SendPasswordOTP(ctx, "not-an-email"), common.ErrorValidation)
	require.NoError(t, auth.SendPasswordOTP(ctx, "a@b.co"))

	require.ErrorIs(t, auth.VerifyPasswordOTP(ctx, "a@b.co", "123456"), common.ErrorValidation)
	require.NoError(t, auth.VerifyPasswordOTP(ctx, "a@b.co", "1234"))

	err := auth.ResetPassword(ctx, models.PasswordReset{Email: "a@b.co", Password: "secret1", Confirm: "secret2"})
	var verrs validatex.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Confirm")

	require.NoError(t, auth.ResetPassword(ctx, models.PasswordReset{Email: "a@b.co", Password: "secret1", Confirm: "secret1"}))

	assert.Equal(t, []string{"send:a@b.co", "verify:a@b.co:1234", "reset:a@b.co:secret1"}, fc.PasswordOps)
}

func TestAuth_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{ProfileRet: models.User{ID: "1", FirstName: "Augusta"}}
	auth, s := newAuth(fc)

	_, err := auth.UpdateProfile(ctx, models.ProfileUpdate{})
	require.ErrorIs(t, err, common.ErrorValidation)

	u, err := auth.UpdateProfile(ctx, models.ProfileUpdate{
		FirstName: "Augusta", LastName: "King", UserName: "ada_b",
		Email: "a@b.co", PhoneNumber: "0123456789", Zipcode: "90210",
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", u.FirstName)
	assert.Equal(t, "Augusta", s.User().FirstName)
}
