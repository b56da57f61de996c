// Package session holds the current user context: token, role and profile.
// One Session is built at startup and handed to every service that needs it;
// it mirrors its state into the local metadata store so a restart keeps the
// user logged in.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	keyToken        = "token"
	keyRole         = "role"
	keyUser         = "user_data"
	keyPendingEmail = "pending_email"
)

var ErrNoPendingEmail = errors.New("no pending registration, register first")

type Session struct {
	mu           sync.RWMutex
	token        string
	role         string
	user         models.User
	pendingEmail string

	db   *sql.DB
	repo metadata.Repository
	now  func() time.Time
}

// New returns a session persisted in db. A nil db keeps everything in memory.
func New(db *sql.DB) *Session {
	s := &Session{db: db, now: time.Now}
	if db != nil {
		s.repo = metadata.NewSQLiteRepository(db)
	}
	return s
}

// Load restores the persisted session.
func (s *Session) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var u models.User
	if raw := all[keyUser]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return fmt.Errorf("load session user: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = all[keyToken]
	s.role = all[keyRole]
	s.user = u
	s.pendingEmail = all[keyPendingEmail]
	return nil
}

// Token returns the bearer token. It fails with common.ErrNoSession when no
// one is logged in or when the token is a JWT whose exp claim has passed.
// Opaque tokens are accepted as is.
func (s *Session) Token(context.Context) (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return "", common.ErrNoSession
	}
	if exp, ok := expiry(token); ok && !s.now().Before(exp) {
		return "", fmt.Errorf("%w: %w", common.ErrNoSession, common.ErrTokenExpired)
	}
	return token, nil
}

// RequireToken is Token without a context.
func (s *Session) RequireToken() (string, error) {
	return s.Token(context.Background())
}

func expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// LoggedIn reports whether a usable token is present.
func (s *Session) LoggedIn() bool {
	_, err := s.RequireToken()
	return err == nil
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// IsEditor decides whether mutating actions are offered. The server does the
// real authorization.
func (s *Session) IsEditor() bool {
	return s.Role() == common.RoleEditor
}

func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) PendingEmail() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pendingEmail == "" {
		return "", ErrNoPendingEmail
	}
	return s.pendingEmail, nil
}

// SignIn stores a login result. The role comes from the user record.
func (s *Session) SignIn(ctx context.Context, res models.LoginResult) error {
	user, err := json.Marshal(res.User)
	if err != nil {
		return err
	}
	err = s.persist(ctx, map[string]string{
		keyToken: res.Token,
		keyRole:  res.User.Role,
		keyUser:  string(user),
	}, keyPendingEmail)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.role, s.user, s.pendingEmail = res.Token, res.User.Role, res.User, ""
	return nil
}

// SetUser replaces the cached profile, e.g. after a profile update.
func (s *Session) SetUser(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.persist(ctx, map[string]string{keyUser: string(raw)}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return nil
}

func (s *Session) SetPendingEmail(ctx context.Context, email string) error {
	if err := s.persist(ctx, map[string]string{keyPendingEmail: email}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingEmail = email
	return nil
}

// Clear logs out.
func (s *Session) Clear(ctx context.Context) error {
	if s.repo != nil {
		if err := s.repo.Delete(ctx, keyToken, keyRole, keyUser, keyPendingEmail); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.role, s.user, s.pendingEmail = "", "", models.User{}, ""
	return nil
}

// persist writes set and removes drop in one transaction.
func (s *Session) persist(ctx context.Context, set map[string]string, drop ...string) error {
	if s.repo == nil {
		return nil
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		for k, v := range set {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return repo.Delete(ctx, drop...)
	})
}
