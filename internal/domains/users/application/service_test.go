package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/everestcart/storefront-api/internal/domains/users/domain"
	"github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

type fakeUserRepo struct {
	byID    map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*domain.User{}, byEmail: map[string]int64{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if id, ok := f.byEmail[user.Email]; ok && id != user.ID {
		return nil, ports.ErrDuplicateEmail
	}
	clone := *user
	if clone.ID == 0 {
		f.nextID++
		clone.ID = f.nextID
	}
	f.byID[clone.ID] = &clone
	f.byEmail[clone.Email] = clone.ID
	result := clone
	return &result, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *f.byID[id]
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

type fakeSessionStore struct {
	tokens map[string]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: map[string]int64{}}
}

func (f *fakeSessionStore) Save(_ context.Context, token string, userID int64) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, token string) (int64, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, ports.ErrSessionNotFound
	}
	return id, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeSessionStore) PurgeExpired(_ context.Context) (int64, error) { return 0, nil }

func newTestService() (*Service, *fakeSessionStore) {
	sessions := newFakeSessionStore()
	return NewService(newFakeUserRepo(), sessions), sessions
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		FirstName: "Anita",
		LastName:  "Gurung",
		Email:     "Anita@Example.com",
		Password:  "hunter22",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "anita@example.com", user.Email, "email is normalized")
	require.Equal(t, actor.RoleClient, user.Role, "sign-up never creates staff")
	require.NotEqual(t, "hunter22", user.PasswordHash)
	require.True(t, user.CheckPassword("hunter22"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput())
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _ := newTestService()
	input := registerInput()
	input.Password = "abc"

	_, err := svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc, sessions := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "anita@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, registered.ID, user.ID)
	require.Equal(t, registered.ID, sessions.tokens[token])
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, errWrong := svc.Login(context.Background(), "anita@example.com", "nope-nope")
	_, _, errUnknown := svc.Login(context.Background(), "ghost@example.com", "hunter22")

	require.ErrorIs(t, errWrong, ErrAuthentication)
	require.ErrorIs(t, errUnknown, ErrAuthentication)
	require.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "anita@example.com", "hunter22")
	require.NoError(t, err)

	act, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, act.UserID)
	require.Equal(t, actor.RoleClient, act.Role)
	require.Equal(t, "anita@example.com", act.Email)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Authenticate(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "anita@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestGetProfile_Ownership(t *testing.T) {
	svc, _ := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	owner := registered.Actor()
	stranger := actor.Actor{UserID: registered.ID + 1, Role: actor.RoleClient}
	staff := actor.Actor{UserID: 999, Role: actor.RoleAdmin}

	_, err = svc.GetProfile(context.Background(), owner, registered.ID)
	require.NoError(t, err)

	_, err = svc.GetProfile(context.Background(), stranger, registered.ID)
	require.ErrorIs(t, err, ports.ErrNotFound, "foreign profiles read as missing")

	_, err = svc.GetProfile(context.Background(), staff, registered.ID)
	require.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), registered.Actor(), registered.ID, ports.ProfileUpdate{
		FirstName:    "Anita",
		LastName:     "Gurung-Shrestha",
		MobileNumber: "9807654321",
		Address:      "Lakeside 6",
		Province:     "Gandaki",
		District:     "Kaski",
		Municipal:    "Pokhara",
	})
	require.NoError(t, err)
	require.Equal(t, "Gurung-Shrestha", updated.LastName)
	require.Equal(t, "9807654321", updated.MobileNumber)
	require.Equal(t, "Pokhara", updated.Municipal)
}

func TestUpdateProfile_RejectsBadMobile(t *testing.T) {
	svc, _ := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), registered.Actor(), registered.ID, ports.ProfileUpdate{
		FirstName:    "Anita",
		LastName:     "Gurung",
		MobileNumber: "12345",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidMobile)
}

func TestUpdateProfile_ForeignForbidden(t *testing.T) {
	svc, _ := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	stranger := actor.Actor{UserID: registered.ID + 1, Role: actor.RoleClient}
	_, err = svc.UpdateProfile(context.Background(), stranger, registered.ID, ports.ProfileUpdate{
		FirstName: "X", LastName: "Y",
	})
	require.ErrorIs(t, err, ports.ErrForbidden)
}

func TestWithTokenSource(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := NewService(newFakeUserRepo(), sessions, WithTokenSource(func() string { return "fixed-token" }))

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "anita@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "fixed-token", token)
}
