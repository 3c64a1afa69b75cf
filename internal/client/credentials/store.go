// Package credentials persists the signed-in user's credential (auth token,
// user profile and remember-me flag) in the local state database.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/dmitrijs2005/cinemaclient/internal/client/repositories/state"
	"github.com/dmitrijs2005/cinemaclient/internal/dbx"
)

// State keys. They match the names the web client kept in local storage.
const (
	KeyToken      = "auth_token"
	KeyUser       = "user_data"
	KeyRememberMe = "remember_me"
)

// Store reads and writes the credential. Multi-key writes are atomic.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) state.Repository {
	return state.NewSQLiteRepository(db)
}

// Token returns the stored auth token, or "" when signed out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Load returns whatever is stored. The result may be partial (a token
// without a user after VerifyToken cleared the token, for instance); use
// Credential.Valid to check.
func (s *Store) Load(ctx context.Context) (models.Credential, error) {
	all, err := s.repo(s.db).List(ctx)
	if err != nil {
		return models.Credential{}, err
	}

	c := models.Credential{Token: string(all[KeyToken])}

	if raw := all[KeyUser]; len(raw) > 0 {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return c, fmt.Errorf("stored user data is corrupt: %w", err)
		}
		c.User = &u
	}

	if raw := all[KeyRememberMe]; len(raw) > 0 {
		c.RememberMe, _ = strconv.ParseBool(string(raw))
	}

	return c, nil
}

// Save replaces the stored credential in one transaction.
func (s *Store) Save(ctx context.Context, c models.Credential) error {
	var user []byte
	if c.User != nil {
		b, err := json.Marshal(c.User)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
		user = b
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, KeyToken, []byte(c.Token)); err != nil {
			return err
		}
		if user == nil {
			if err := r.Delete(ctx, KeyUser); err != nil {
				return err
			}
		} else if err := r.Set(ctx, KeyUser, user); err != nil {
			return err
		}
		return r.Set(ctx, KeyRememberMe, []byte(strconv.FormatBool(c.RememberMe)))
	})
}

// SetRememberMe updates only the remember-me flag.
func (s *Store) SetRememberMe(ctx context.Context, remember bool) error {
	return s.repo(s.db).Set(ctx, KeyRememberMe, []byte(strconv.FormatBool(remember)))
}

// Clear removes every credential key. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, KeyToken, KeyUser, KeyRememberMe)
	})
}

// ClearToken removes only the token, keeping the cached profile.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, KeyToken)
}
