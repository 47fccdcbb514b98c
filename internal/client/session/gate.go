// Package session holds the single authenticated identity and gates the
// rest of the client on it. The gate owns the persisted credential: login
// writes it, logout and auth failures wipe it, and a restart restores the
// session only after the persisted token proves well-formed and unexpired.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/credentials"
	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/dbx"
)

// Identity is the authenticated principal. Owned exclusively by the gate;
// read-only everywhere else.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	Role        common.Role
	Token       string
}

// LoginAPI is the slice of the adapter the gate needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
}

// Persisted credential keys.
const (
	keyToken       = "token"
	keyUserID      = "user_id"
	keyEmail       = "email"
	keyRole        = "role"
	keyDisplayName = "display_name"
)

// Gate tracks the current identity: Anonymous (identity == nil) or
// Authenticated. Login is the only path to Authenticated. Logout and
// ForceLogout reset to Anonymous synchronously from the caller's
// perspective; the persisted credential is cleared as part of both.
type Gate struct {
	mu       sync.Mutex
	api      LoginAPI
	db       *sql.DB
	creds    credentials.Repository
	identity *Identity
}

func NewGate(loginAPI LoginAPI, db *sql.DB) *Gate {
	return &Gate{
		api:   loginAPI,
		db:    db,
		creds: credentials.NewSQLiteRepository(db),
	}
}

// Current returns the authenticated identity, or ok=false when Anonymous.
// The returned value is a copy.
func (g *Gate) Current() (Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return Identity{}, false
	}
	return *g.identity, true
}

// Token returns the current bearer token, or "" when Anonymous. Wired into
// the adapter as its token source.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return ""
	}
	return g.identity.Token
}

// Login authenticates against the server, then atomically sets the identity
// and persists the credential so a restart restores the same session.
func (g *Gate) Login(ctx context.Context, email, password string) (Identity, error) {
	res, err := g.api.Login(ctx, email, password)
	if err != nil {
		return Identity{}, err
	}

	role, err := common.ParseRole(res.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("login response: %w", err)
	}

	id := Identity{
		ID:          res.ID,
		Email:       res.Email,
		DisplayName: res.DisplayName,
		Role:        role,
		Token:       res.Token,
	}

	if err := g.persist(ctx, id); err != nil {
		return Identity{}, fmt.Errorf("persisting credential: %w", err)
	}

	g.mu.Lock()
	g.identity = &id
	g.mu.Unlock()

	return id, nil
}

// persist writes all credential fields in one transaction, so a crash
// cannot leave a token without the identity it belongs to.
func (g *Gate) persist(ctx context.Context, id Identity) error {
	return dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		for key, value := range map[string]string{
			keyToken:       id.Token,
			keyUserID:      id.ID,
			keyEmail:       id.Email,
			keyRole:        string(id.Role),
			keyDisplayName: id.DisplayName,
		} {
			if err := repo.Set(ctx, key, []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Restore rebuilds the authenticated session from the persisted credential.
// A missing, malformed, or expired token yields Anonymous (ok=false, nil
// error) and wipes whatever was cached; it is never an error to start
// logged out.
func (g *Gate) Restore(ctx context.Context) (Identity, bool, error) {
	token, err := g.creds.Get(ctx, keyToken)
	if err != nil {
		return Identity{}, false, err
	}
	if len(token) == 0 {
		return Identity{}, false, nil
	}

	if err := ValidateToken(string(token), time.Now()); err != nil {
		// Stale credential: drop it rather than trusting or crashing.
		_ = g.creds.Clear(ctx)
		return Identity{}, false, nil
	}

	read := func(key string) (string, error) {
		v, err := g.creds.Get(ctx, key)
		return string(v), err
	}

	userID, err := read(keyUserID)
	if err != nil {
		return Identity{}, false, err
	}
	email, err := read(keyEmail)
	if err != nil {
		return Identity{}, false, err
	}
	roleRaw, err := read(keyRole)
	if err != nil {
		return Identity{}, false, err
	}
	displayName, err := read(keyDisplayName)
	if err != nil {
		return Identity{}, false, err
	}

	role, err := common.ParseRole(roleRaw)
	if err != nil {
		_ = g.creds.Clear(ctx)
		return Identity{}, false, nil
	}

	id := Identity{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Token:       string(token),
	}

	g.mu.Lock()
	g.identity = &id
	g.mu.Unlock()

	return id, true, nil
}

// Logout clears the persisted credential and resets to Anonymous. The
// identity is dropped before the cache write, so a concurrent Token() call
// already sees the session as gone.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.identity = nil
	g.mu.Unlock()

	return g.creds.Clear(ctx)
}

// ForceLogout is the adapter's auth-failure hook: any 401/403 on an
// authenticated call means the credential is invalid, whichever store
// triggered it.
func (g *Gate) ForceLogout() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = g.Logout(ctx)
}
