package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
	"github.com/bookhaven/bookstore-backend/pkg/mailer"
)

// TokenPair is one issued session: an access token and the refresh token
// that can rotate it.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SessionService orchestrates registration, login, refresh and logout for
// both account kinds. The refresh token stored on the account row is the
// session credential of record: issuing a new pair overwrites it, so at
// most one refresh token per account is valid at a time.
type SessionService struct {
	Buyers  repository.AccountRepository
	Sellers repository.AccountRepository
	JWT     *helpers.JWTManager
	Pub     *helpers.RabbitPublisher
	Logger  *logrus.Logger
}

func NewSessionService(buyers, sellers repository.AccountRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger) *SessionService {
	return &SessionService{Buyers: buyers, Sellers: sellers, JWT: jwt, Pub: pub, Logger: logger}
}

func (s *SessionService) storeFor(kind entity.AccountKind) (repository.AccountRepository, error) {
	switch kind {
	case entity.KindBuyer:
		return s.Buyers, nil
	case entity.KindSeller:
		return s.Sellers, nil
	}
	return nil, ErrNotFound
}

// Register creates an account of the given kind. Duplicate emails fail
// with ErrEmailTaken. A welcome email job is enqueued best-effort.
func (s *SessionService) Register(ctx context.Context, kind entity.AccountKind, name, email, password string) (*entity.Account, error) {
	store, err := s.storeFor(kind)
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &entity.Account{Kind: kind, Name: name, Email: email, Password: hash}
	if err := store.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Pub != nil {
		job := mailer.WelcomeJob(a.Email, a.Name, kind.String())
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", a.Email).Warn("welcome email enqueue failed")
		}
	}

	return a, nil
}

// IssueSessionPair loads the account, signs a fresh access/refresh pair
// and persists both tokens on the account row, invalidating any
// previously issued refresh token.
func (s *SessionService) IssueSessionPair(ctx context.Context, kind entity.AccountKind, accountID int64) (TokenPair, error) {
	store, err := s.storeFor(kind)
	if err != nil {
		return TokenPair{}, err
	}
	a, err := store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrNotFound
		}
		return TokenPair{}, err
	}

	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, a.Name, a.Email, kind.String())
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID)
	if err != nil {
		return TokenPair{}, err
	}

	if err := store.UpdateTokens(ctx, a.ID, access, refresh); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Login validates credentials and issues a session pair. Unknown email
// and wrong password fail identically to avoid account enumeration.
func (s *SessionService) Login(ctx context.Context, kind entity.AccountKind, email, password string) (*entity.Account, TokenPair, error) {
	store, err := s.storeFor(kind)
	if err != nil {
		return nil, TokenPair{}, err
	}

	a, err := store.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.IssueSessionPair(ctx, kind, a.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return a, pair, nil
}

// Refresh rotates the session pair. The presented token must match the
// refresh token currently stored for the account; rotation makes the
// stored token single-use.
func (s *SessionService) Refresh(ctx context.Context, kind entity.AccountKind, presented string, accountID int64) (TokenPair, error) {
	if presented == "" {
		return TokenPair{}, ErrUnauthorized
	}
	store, err := s.storeFor(kind)
	if err != nil {
		return TokenPair{}, err
	}
	a, err := store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, err
	}
	if a.RefreshToken == "" || a.RefreshToken != presented {
		return TokenPair{}, ErrInvalidToken
	}
	return s.IssueSessionPair(ctx, kind, accountID)
}

// Logout clears both stored tokens, invalidating the session immediately.
func (s *SessionService) Logout(ctx context.Context, kind entity.AccountKind, accountID int64) error {
	store, err := s.storeFor(kind)
	if err != nil {
		return err
	}
	if err := store.ClearTokens(ctx, accountID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
