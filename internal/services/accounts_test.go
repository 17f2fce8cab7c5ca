package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayana_shop/internal/models"
	"ayana_shop/internal/utils"
)

const testSecret = "test-secret"

type accountFixture struct {
	svc     *AccountService
	users   *fakeUsers
	codes   *fakeCodes
	limiter *fakeLimiter
	mailer  *fakeMailer
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{users: newFakeUsers(), codes: newFakeCodes(), limiter: newFakeLimiter(), mailer: &fakeMailer{}}
	emails := NewEmailService(f.mailer, f.codes, nil, quietLog())
	f.svc = NewAccountService(f.users, f.limiter, emails, testSecret, fixedClock(discountNow), quietLog())
	return f
}

func (f *accountFixture) register(t *testing.T, email, password string) *models.User {
	u, err := f.svc.Register(context.Background(), Registration{Email: email, Password: password, ConfirmPassword: password})
	require.NoError(t, err)
	return u
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	_, err := f.svc.Register(ctx, Registration{Email: "", Password: "secret1", ConfirmPassword: "secret1"})
	assert.ErrorIs(t, err, ErrEmailRequired)
	_, err = f.svc.Register(ctx, Registration{Email: "a@b.ba", Password: "12345", ConfirmPassword: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	_, err = f.svc.Register(ctx, Registration{Email: "a@b.ba", Password: "123456", ConfirmPassword: "654321"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	f.register(t, "a@b.ba", "123456")
	_, err = f.svc.Register(ctx, Registration{Email: " A@B.ba ", Password: "123456", ConfirmPassword: "123456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterConfirmLogin(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()
	u := f.register(t, "Ana@Example.ba", "flowers1")

	assert.Equal(t, "ana@example.ba", u.Email)
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.False(t, u.EmailConfirmed)
	assert.Equal(t, 1, f.mailer.count())

	_, _, err := f.svc.Login(ctx, "ana@example.ba", "flowers1")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)

	assert.ErrorIs(t, f.svc.ConfirmEmail(ctx, "ana@example.ba", "0000"), ErrInvalidCode)
	require.NoError(t, f.svc.ConfirmEmail(ctx, "ana@example.ba", f.codes.items["ana@example.ba"]))

	user, token, err := f.svc.Login(ctx, "ANA@example.ba", "flowers1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)

	claims, err := utils.ParseJWT(token, []byte(testSecret), jwt.WithTimeFunc(func() time.Time { return discountNow }))
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()
	f.register(t, "ana@example.ba", "flowers1")

	for i := 0; i < 4; i++ {
		_, _, err := f.svc.Login(ctx, "ana@example.ba", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, _, err := f.svc.Login(ctx, "ana@example.ba", "wrong")
	assert.ErrorIs(t, err, ErrLockedOut)

	// même le bon mot de passe est refusé pendant le verrouillage
	_, _, err = f.svc.Login(ctx, "ana@example.ba", "flowers1")
	assert.ErrorIs(t, err, ErrLockedOut)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAccountFixture()
	_, _, err := f.svc.Login(context.Background(), "ghost@example.ba", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, f.limiter.failures["ghost@example.ba"])
}

func TestExternalLogin(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	u, token, err := f.svc.ExternalLogin(ctx, "google", "Mia@Gmail.com", "Mia")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, u.EmailConfirmed)
	assert.Equal(t, "google", u.Provider)

	again, _, err := f.svc.ExternalLogin(ctx, "google", "mia@gmail.com", "Mia")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Len(t, f.users.items, 1)

	// un compte local non confirmé est confirmé par le fournisseur
	local := f.register(t, "lea@example.ba", "flowers1")
	_, _, err = f.svc.ExternalLogin(ctx, "google", "lea@example.ba", "Lea")
	require.NoError(t, err)
	assert.True(t, f.users.items[local.ID].EmailConfirmed)
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	u, err := f.svc.CreateEmployee(ctx, "staff@ayana.ba", "Staff", "garden42")
	require.NoError(t, err)
	assert.True(t, u.IsEmployee())
	assert.True(t, u.EmailConfirmed)

	_, _, err = f.svc.Login(ctx, "staff@ayana.ba", "garden42")
	require.NoError(t, err)

	_, err = f.svc.CreateEmployee(ctx, "staff@ayana.ba", "Staff", "garden42")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
