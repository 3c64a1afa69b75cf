package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cinemaclient/internal/client/client"
	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), db
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	want := models.Credential{
		Token:      "tok",
		User:       &models.User{ID: "u1", Email: "a@b.c", Role: models.RoleAdmin},
		RememberMe: true,
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Valid())

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestLoad_Empty(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Valid())
	assert.False(t, got.RememberMe)

	tok, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestClear_IsIdempotent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.Credential{Token: "t", User: &models.User{ID: "1"}, RememberMe: true}))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Credential{}, got)
}

func TestClearToken_KeepsUser(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.Credential{Token: "t", User: &models.User{ID: "1"}}))
	require.NoError(t, s.ClearToken(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Token)
	require.NotNil(t, got.User)
	assert.False(t, got.Valid())
}

func TestSetRememberMe(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRememberMe(ctx, true))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.RememberMe)
}

func TestSave_WithoutUserDropsStaleProfile(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.Credential{Token: "a", User: &models.User{ID: "1"}}))
	require.NoError(t, s.Save(ctx, models.Credential{Token: "b"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.User)
}

func TestLoad_CorruptUser(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO client_state(key, value) VALUES (?, ?)`, KeyUser, []byte("{not json"))
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.ErrorContains(t, err, "corrupt")
}

func TestSave_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO client_state`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO client_state`).WillReturnError(boom)
	mock.ExpectRollback()

	err = NewStore(db).Save(context.Background(), models.Credential{Token: "t", User: &models.User{ID: "1"}})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
