package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartblog/internal/config"
	"smartblog/internal/dto"
	"smartblog/internal/entity"
)

type recordingMailer struct {
	mu    sync.Mutex
	sends []string
}

func (m *recordingMailer) SendConfirmationEmail(to, username, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, to)
	return nil
}

func newAuthFixture() (*MockUserRepository, AuthService) {
	users := new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		ConfirmTokenTTL: time.Hour,
	}
	return users, NewAuthService(users, &recordingMailer{}, cfg)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestSignup_EmailTakenConflict(t *testing.T) {
	users, svc := newAuthFixture()

	users.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&entity.User{Email: "taken@example.com"}, nil)

	user, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "someone",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.Nil(t, user)
	assert.EqualError(t, err, "Account already exists.")
	users.AssertNotCalled(t, "Create")
}

func TestSignup_HashesPasswordAndDefaultsRole(t *testing.T) {
	users, svc := newAuthFixture()

	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "newcomer",
		Email:    "new@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.False(t, user.Confirmed)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestLogin_DistinctFailureReasons(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		users, svc := newAuthFixture()
		users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "x"})

		assert.EqualError(t, err, "Invalid email.")
	})

	t.Run("unconfirmed email", func(t *testing.T) {
		users, svc := newAuthFixture()
		users.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&entity.User{Email: "user@example.com", Confirmed: false}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "x"})

		assert.EqualError(t, err, "Email not confirmed.")
	})

	t.Run("wrong password", func(t *testing.T) {
		users, svc := newAuthFixture()
		users.On("FindByEmail", mock.Anything, "user@example.com").Return(&entity.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			Confirmed:    true,
			PasswordHash: hashPassword(t, "right"),
		}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "wrong"})

		assert.EqualError(t, err, "Invalid password.")
	})
}

func TestLogin_IssuesAndStoresTokenPair(t *testing.T) {
	users, svc := newAuthFixture()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "user@example.com",
		Confirmed:    true,
		PasswordHash: hashPassword(t, "correct horse"),
	}

	users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	users.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("*string")).Return(nil)

	tokens, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "correct horse"})

	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
	users.AssertCalled(t, "UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("*string"))
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	users, svc := newAuthFixture()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "user@example.com",
		Confirmed:    true,
		PasswordHash: hashPassword(t, "pw"),
	}

	users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	users.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("*string")).Return(nil)

	tokens, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "pw"})
	assert.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.EqualError(t, err, "Invalid refresh token.")
}

func TestRefresh_StoredTokenMismatchClearsIt(t *testing.T) {
	users, svc := newAuthFixture()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "user@example.com",
		Confirmed:    true,
		PasswordHash: hashPassword(t, "pw"),
	}

	users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	users.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("*string")).Return(nil)

	tokens, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "pw"})
	assert.NoError(t, err)

	// The store holds a different (rotated) token than the presented one.
	other := "other-token"
	user.RefreshToken = &other
	users.On("FindByID", mock.Anything, userID).Return(user, nil)
	users.On("UpdateRefreshToken", mock.Anything, userID, (*string)(nil)).Return(nil)

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)

	assert.EqualError(t, err, "Invalid refresh token.")
	users.AssertCalled(t, "UpdateRefreshToken", mock.Anything, userID, (*string)(nil))
}

func TestRefresh_ValidTokenRotates(t *testing.T) {
	users, svc := newAuthFixture()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "user@example.com",
		Confirmed:    true,
		PasswordHash: hashPassword(t, "pw"),
	}

	var stored string
	users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	users.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) {
			stored = *args.Get(2).(*string)
			user.RefreshToken = &stored
		}).Return(nil)
	users.On("FindByID", mock.Anything, userID).Return(user, nil)

	tokens, err := svc.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "pw"})
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestConfirmEmail_BadTokenVerificationError(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.ConfirmEmail(context.Background(), "garbage")

	assert.EqualError(t, err, "Verification error.")
}

func TestRequestEmail_AlreadyConfirmedShortCircuits(t *testing.T) {
	users, svc := newAuthFixture()

	users.On("FindByEmail", mock.Anything, "done@example.com").
		Return(&entity.User{Email: "done@example.com", Confirmed: true}, nil)

	message, err := svc.RequestEmail(context.Background(), "done@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "Your email is already confirmed.", message)
}

func TestRequestEmail_UnknownUser(t *testing.T) {
	users, svc := newAuthFixture()

	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RequestEmail(context.Background(), "ghost@example.com")

	assert.EqualError(t, err, "User not found.")
}
