package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

var ErrInvalidCredentials = apperr.Unauthenticated("invalid credentials")

type AuthService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Sessions *SessionStore
	Logger   *logrus.Logger
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, sessions *SessionStore, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Sessions: sessions, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResponse struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   entity.Role `json:"role"`
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.PasswordMatches(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u, sid)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Sessions.Put(ctx, u, sid); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session write failed")
	}
	return pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResponse{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, pair, nil
}

// Refresh checks the refresh token against the live session and rotates the session id.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, int64, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, 0, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return TokenPair{}, 0, ErrInvalidCredentials
		}
		return TokenPair{}, 0, err
	}
	if s.Sessions.Enabled() {
		data, rErr := s.Sessions.Get(ctx, u.ID)
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, 0, ErrInvalidCredentials
		}
	}
	sid := uuid.NewString()
	pair, err := s.sign(u, sid)
	if err != nil {
		return TokenPair{}, 0, err
	}
	if err := s.Sessions.Rotate(ctx, u.ID, sid); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session rotate failed")
	}
	return pair, u.ID, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.Sessions.Delete(ctx, userID)
}

func (s *AuthService) sign(u *entity.User, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role), sid)
	if err != nil {
		s.logSignError(err, u.ID, "generate access token failed")
		return TokenPair{}, apperr.Unexpected(err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, string(u.Role), sid)
	if err != nil {
		s.logSignError(err, u.ID, "generate refresh token failed")
		return TokenPair{}, apperr.Unexpected(err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) logSignError(err error, userID int64, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error(msg)
	}
}
