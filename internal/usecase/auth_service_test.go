package usecase_test

import (
	"context"
	"testing"

	"shortener/internal/domain"
	"shortener/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memoryUsers backs AuthService tests with a MockUserRepository storing users
// in a map.
func memoryUsers() *usecase.MockUserRepository {
	users := make(map[string]*domain.User)
	nextID := int64(0)
	return &usecase.MockUserRepository{
		CreateFunc: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			if _, exists := users[username]; exists {
				return nil, domain.ErrUsernameTaken
			}
			nextID++
			user := &domain.User{ID: nextID, Username: username, PasswordHash: passwordHash}
			users[username] = user
			return user, nil
		},
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			if user, exists := users[username]; exists {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
}

func newAuthService() *usecase.AuthService {
	return usecase.NewAuthService(memoryUsers(), []byte("test-secret"), zap.NewNop())
}

func TestRegister_HashesPassword(t *testing.T) {
	users := memoryUsers()
	service := usecase.NewAuthService(users, []byte("test-secret"), zap.NewNop())

	user, err := service.Register(context.Background(), "alice", "correct horse battery")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service := newAuthService()

	_, err := service.Register(context.Background(), "alice", "correct horse battery")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), "alice", "another password")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	service := newAuthService()

	_, err := service.Register(context.Background(), "", "correct horse battery")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Register(context.Background(), "alice", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_RoundTrip(t *testing.T) {
	service := newAuthService()

	user, err := service.Register(context.Background(), "alice", "correct horse battery")
	require.NoError(t, err)

	token, err := service.Login(context.Background(), "alice", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	service := newAuthService()

	_, err := service.Register(context.Background(), "alice", "correct horse battery")
	require.NoError(t, err)

	token, err := service.Login(context.Background(), "alice", "wrong password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogin_UnknownUser(t *testing.T) {
	service := newAuthService()

	token, err := service.Login(context.Background(), "nobody", "whatever password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestParseToken_Garbage(t *testing.T) {
	service := newAuthService()

	_, err := service.ParseToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := newAuthService()
	verifier := usecase.NewAuthService(memoryUsers(), []byte("other-secret"), zap.NewNop())

	_, err := issuer.Register(context.Background(), "alice", "correct horse battery")
	require.NoError(t, err)
	token, err := issuer.Login(context.Background(), "alice", "correct horse battery")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
