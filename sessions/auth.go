package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/utils"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Grant is what a successful authentication yields.
type Grant struct {
	Token     string
	ExpiresAt time.Time
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Grant, error)
}

// APIAuthenticator logs in against the catalog API and keeps its token.
// The session ends when the token's exp claim says so.
type APIAuthenticator struct {
	client *catalog.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewAPIAuthenticator(client *catalog.Client, ttl time.Duration) *APIAuthenticator {
	return &APIAuthenticator{client: client, ttl: ttl, now: time.Now}
}

func (a *APIAuthenticator) Authenticate(ctx context.Context, username, password string) (Grant, error) {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		var ae *catalog.APIError
		if errors.As(err, &ae) && (ae.Status == http.StatusUnauthorized || ae.Status == http.StatusBadRequest) {
			return Grant{}, ErrInvalidCredentials
		}
		return Grant{}, err
	}
	return Grant{Token: token, ExpiresAt: utils.TokenExpiry(token, a.now().Add(a.ttl))}, nil
}

// LocalAuthenticator checks a single admin account configured by
// ADMIN_USERNAME and a bcrypt ADMIN_PASSWORD_HASH. Sessions it grants
// carry no catalog token.
type LocalAuthenticator struct {
	username string
	hash     string
	ttl      time.Duration
	now      func() time.Time
}

func NewLocalAuthenticator(username, passwordHash string, ttl time.Duration) *LocalAuthenticator {
	return &LocalAuthenticator{username: username, hash: passwordHash, ttl: ttl, now: time.Now}
}

func (a *LocalAuthenticator) Authenticate(_ context.Context, username, password string) (Grant, error) {
	if a.username == "" || a.hash == "" || username != a.username {
		return Grant{}, ErrInvalidCredentials
	}
	if err := utils.CheckPassword(a.hash, password); err != nil {
		return Grant{}, ErrInvalidCredentials
	}
	return Grant{ExpiresAt: a.now().Add(a.ttl)}, nil
}
