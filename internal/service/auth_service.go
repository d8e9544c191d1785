package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartblog/internal/config"
	"smartblog/internal/dto"
	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
	"smartblog/pkg/mailer"
)

// Token scopes carried in the JWT claims.
const (
	ScopeAccess       = "access"
	ScopeRefresh      = "refresh"
	ScopeEmailConfirm = "email_confirm"
)

// Claims is the JWT payload for every token this service issues.
// Subject is the user ID for access/refresh tokens and the email
// address for confirmation tokens.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	RequestEmail(ctx context.Context, email string) (string, error)
}

type authService struct {
	repo   repository.UserRepository
	mailer mailer.Mailer

	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	confirmTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, m mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		repo:       repo,
		mailer:     m,
		secret:     cfg.JWTSecret,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		confirmTTL: cfg.ConfirmTokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*entity.User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("Account already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         entity.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Account already exists.")
		}
		return nil, err
	}

	s.sendConfirmationAsync(user)

	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Invalid email.")
		}
		return nil, err
	}
	if !user.Confirmed {
		return nil, apperror.Unauthorized("Email not confirmed.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("Invalid password.")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.parseToken(refreshToken, ScopeRefresh)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token.")
	}

	user, err := s.userFromSubject(ctx, claims.Subject)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token.")
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		// A stale or reused token invalidates the stored one.
		if err := s.repo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			return nil, err
		}
		return nil, apperror.Unauthorized("Invalid refresh token.")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token, ScopeEmailConfirm)
	if err != nil {
		return "", apperror.BadRequest("Verification error.")
	}

	user, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return "", apperror.BadRequest("Verification error.")
	}
	if user.Confirmed {
		return "Your email is already confirmed.", nil
	}
	if err := s.repo.ConfirmEmail(ctx, user.Email); err != nil {
		return "", err
	}
	return "Your email has been confirmed.", nil
}

func (s *authService) RequestEmail(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.NotFound("User not found.")
		}
		return "", err
	}
	if user.Confirmed {
		return "Your email is already confirmed.", nil
	}

	s.sendConfirmationAsync(user)

	return "Check your email for confirmation.", nil
}

func (s *authService) sendConfirmationAsync(user *entity.User) {
	if s.mailer == nil {
		return
	}
	token, err := s.signToken(ScopeEmailConfirm, user.Email, s.confirmTTL)
	if err != nil {
		log.Printf("failed to sign confirmation token for %s: %v", user.Email, err)
		return
	}
	// Delivery happens off the request path; a failed send only logs,
	// the user can re-request via /auth/request_email.
	go func() {
		if err := s.mailer.SendConfirmationEmail(user.Email, user.Username, token); err != nil {
			log.Printf("failed to send confirmation email to %s: %v", user.Email, err)
		}
	}()
}

func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, err := s.signToken(ScopeAccess, user.ID.String(), s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signToken(ScopeRefresh, user.ID.String(), s.refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *authService) signToken(scope, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *authService) parseToken(tokenString, wantScope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Scope != wantScope {
		return nil, apperror.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) userFromSubject(ctx context.Context, subject string) (*entity.User, error) {
	id, err := parseUUID(subject)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
