package service_test

import (
	"net/url"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/cyberfanta/shopping-exercise/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func (suite *serviceSuite) newAuthService(mailer port.PasswordResetNotifier) (*service.AuthService, *service.TokenService) {
	tokens := service.NewTokenService(gofakeit.UUID(), time.Hour)
	auth := service.NewAuthService(suite.store, tokens, mailer, zaptest.NewLogger(suite.T()), "http://shop.test/")
	return auth, tokens
}

func (suite *serviceSuite) TestRegisterAndLogin() {
	t := suite.T()
	ctx := t.Context()

	auth, tokens := suite.newAuthService(nil)

	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	session, err := auth.Register(ctx, domain.Registration{
		Email:     email,
		Password:  password,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(email), session.User.Email)
	assert.NotEqual(t, password, session.User.PasswordHash)

	principal, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, principal.UserID)
	assert.Equal(t, domain.RoleUser, principal.Role)

	_, err = auth.Register(ctx, domain.Registration{
		Email:     email,
		Password:  password,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = auth.Register(ctx, domain.Registration{
		Email:     gofakeit.Email(),
		Password:  "12345",
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	loggedIn, err := auth.Login(ctx, email, password)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, loggedIn.User.ID)

	_, err = auth.Login(ctx, email, password+"x")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.Login(ctx, gofakeit.Email(), password)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, suite.store.Repositories().Users.Deactivate(ctx, session.User.ID))
	_, err = auth.Login(ctx, email, password)
	require.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func (suite *serviceSuite) TestPasswordReset() {
	t := suite.T()
	ctx := t.Context()

	mailer := &resetMailer{}
	auth, _ := suite.newAuthService(mailer)

	email := gofakeit.Email()
	session, err := auth.Register(ctx, domain.Registration{
		Email:     email,
		Password:  "old-password",
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	require.NoError(t, err)

	require.NoError(t, auth.ForgotPassword(ctx, gofakeit.Email()), "unknown emails are not revealed")
	require.NoError(t, auth.ForgotPassword(ctx, email))
	auth.Wait()

	link, err := url.Parse(mailer.last())
	require.NoError(t, err)
	assert.Equal(t, "/reset-password", link.Path)
	token := link.Query().Get("token")
	assert.Len(t, token, 64)

	require.NoError(t, auth.ResetPassword(ctx, token, "new-password"))
	require.ErrorIs(t, auth.ResetPassword(ctx, token, "other-password"), domain.ErrInvalidToken)

	_, err = auth.Login(ctx, email, "old-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.Login(ctx, email, "new-password")
	require.NoError(t, err)

	require.ErrorIs(t, auth.ChangePassword(ctx, session.User.ID, "wrong", "third-password"), domain.ErrWrongPassword)
	require.NoError(t, auth.ChangePassword(ctx, session.User.ID, "new-password", "third-password"))

	_, err = auth.Login(ctx, email, "third-password")
	require.NoError(t, err)
}

func (suite *serviceSuite) TestUpdateProfile() {
	t := suite.T()
	ctx := t.Context()

	auth, _ := suite.newAuthService(nil)
	user := suite.createUser()

	phone := gofakeit.Phone()
	updated, err := auth.UpdateProfile(ctx, user.ID, domain.ProfilePatch{Phone: &phone})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Equal(t, user.FirstName, updated.FirstName)

	_, err = auth.UpdateProfile(ctx, user.ID, domain.ProfilePatch{})
	require.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)

	me, err := auth.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, phone, *me.Phone)
}
