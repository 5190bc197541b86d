package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/sahoadmin/models"
	"github.com/sirupsen/logrus"
)

const CookieName = "saho_admin_session"

// Manager owns the session lifecycle: Login creates an authenticated
// session, Logout tears it down, Current resolves a cookie value.
type Manager struct {
	store  Store
	auth   Authenticator
	now    func() time.Time
	onDrop []func(ctx context.Context, sessionID string)
}

func NewManager(store Store, auth Authenticator) *Manager {
	return &Manager{store: store, auth: auth, now: time.Now}
}

// OnDrop registers a hook run when a session is logged out or found
// expired.
func (m *Manager) OnDrop(fn func(ctx context.Context, sessionID string)) {
	m.onDrop = append(m.onDrop, fn)
}

func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	grant, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user": username, "error": err}).Info("login refused")
		return nil, err
	}
	now := m.now().UTC()
	s := &models.Session{
		ID:            uuid.NewString(),
		UserName:      username,
		Token:         grant.Token,
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     grant.ExpiresAt.UTC(),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user": username, "expiresAt": s.ExpiresAt}).Info("logged in")
	return s, nil
}

// Logout clears the token, the user name and the authenticated flag.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	m.drop(ctx, sessionID)
	return m.store.Delete(ctx, sessionID)
}

// Current returns the active session for id, or ErrNotFound.
func (m *Manager) Current(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.Active(m.now()) {
		m.drop(ctx, sessionID)
		if err := m.store.Delete(ctx, sessionID); err != nil {
			logrus.WithFields(logrus.Fields{"session": sessionID, "error": err}).Warn("failed to delete expired session")
		}
		return nil, ErrNotFound
	}
	return s, nil
}

// Alive reports whether the session still exists and is active. Store
// errors other than ErrNotFound count as alive.
func (m *Manager) Alive(ctx context.Context, sessionID string) bool {
	s, err := m.store.Get(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		return true
	}
	return s.Active(m.now())
}

// Sweep deletes expired sessions from the store.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

func (m *Manager) drop(ctx context.Context, sessionID string) {
	for _, fn := range m.onDrop {
		fn(ctx, sessionID)
	}
}
