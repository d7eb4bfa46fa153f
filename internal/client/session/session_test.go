package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore wraps MemoryStore, records write order and can fail on demand.
type recordingStore struct {
	*MemoryStore
	sets      []string
	deletes   []string
	failGet   error
	failDelOn string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: NewMemoryStore()}
}

func (r *recordingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	return r.MemoryStore.Get(ctx, key)
}

func (r *recordingStore) Set(ctx context.Context, key string, value []byte) error {
	r.sets = append(r.sets, key)
	return r.MemoryStore.Set(ctx, key, value)
}

func (r *recordingStore) Delete(ctx context.Context, key string) error {
	r.deletes = append(r.deletes, key)
	if key == r.failDelOn {
		return errors.New("disk full")
	}
	return r.MemoryStore.Delete(ctx, key)
}

func TestSave_WritesAccessTokenLast(t *testing.T) {
	st := newRecordingStore()
	s := New(st)
	ctx := context.Background()

	user := &models.User{ID: 1, Email: "a@b.c", Name: "Asha", Role: models.RoleCustomer}
	require.NoError(t, s.Save(ctx, models.TokenPair{Access: "A1", Refresh: "R1"}, user))

	require.Equal(t, []string{KeyRefreshToken, KeyUser, KeyAccessToken}, st.sets)

	at, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", at)

	rt, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R1", rt)

	got, err := s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, models.RoleCustomer, got.Role)
	assert.True(t, s.IsAuthenticated(ctx))
}

func TestSave_NilUserDropsPreviousAccount(t *testing.T) {
	ctx := context.Background()
	prev := &models.User{ID: 1, Email: "a@b.c", Name: "Asha", Role: models.RoleCustomer}

	stores := map[string]Store{
		"sequential": newRecordingStore(),
		"batch":      NewSealedStore(NewMemoryStore(), newTestSealer(t, "pass")),
	}
	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			s := New(st)
			require.NoError(t, s.Save(ctx, models.TokenPair{Access: "A1", Refresh: "R1"}, prev))
			require.NoError(t, s.Save(ctx, models.TokenPair{Access: "A2", Refresh: "R2"}, nil))

			u, err := s.User(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)

			at, err := s.AccessToken(ctx)
			require.NoError(t, err)
			assert.Equal(t, "A2", at)
		})
	}

	rec := stores["sequential"].(*recordingStore)
	assert.Equal(t, []string{KeyUser}, rec.deletes)
	assert.Equal(t, KeyAccessToken, rec.sets[len(rec.sets)-1])
}

func TestSave_RejectsIncompletePair(t *testing.T) {
	st := NewMemoryStore()
	s := New(st)

	err := s.Save(context.Background(), models.TokenPair{Access: "A1"}, nil)
	require.ErrorIs(t, err, ErrNoTokens)
	assert.Equal(t, 0, st.Len())
}

func TestClear_RemovesAllKeysAndIsIdempotent(t *testing.T) {
	st := newRecordingStore()
	s := New(st)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.TokenPair{Access: "A", Refresh: "R"}, &models.User{ID: 2}))
	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, KeyAccessToken, st.deletes[0])

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.IsAuthenticated(ctx))

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestClear_AttemptsEveryKeyOnError(t *testing.T) {
	st := newRecordingStore()
	st.failDelOn = KeyRefreshToken
	s := New(st)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.TokenPair{Access: "A", Refresh: "R"}, &models.User{ID: 2}))

	err := s.Clear(ctx)
	require.Error(t, err)
	assert.Equal(t, Keys, st.deletes)

	v, _ := st.MemoryStore.Get(ctx, KeyUser)
	assert.Nil(t, v)
}

func TestIsAuthenticated_FalseOnStoreError(t *testing.T) {
	st := newRecordingStore()
	st.failGet = errors.New("locked")
	s := New(st)

	assert.False(t, s.IsAuthenticated(context.Background()))
	_, err := s.AccessToken(context.Background())
	require.Error(t, err)
}

func TestPartialState_WithoutAccessTokenIsSignedOut(t *testing.T) {
	st := NewMemoryStore()
	s := New(st)
	ctx := context.Background()

	require.NoError(t, s.SetRefreshToken(ctx, "R"))
	require.NoError(t, s.SetUser(ctx, &models.User{ID: 3}))
	assert.False(t, s.IsAuthenticated(ctx))

	require.NoError(t, s.SetAccessToken(ctx, "A"))
	assert.True(t, s.IsAuthenticated(ctx))
}

func TestUser_CorruptRecord(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.Set(context.Background(), KeyUser, []byte("{oops")))

	_, err := New(st).User(context.Background())
	require.Error(t, err)
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":     exp.Unix(),
		"user_id": 12,
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := ExpiresAt(signed)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestExpiresAt_NoClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 12})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := ExpiresAt(signed)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestExpiresAt_Garbage(t *testing.T) {
	_, err := ExpiresAt("not-a-jwt")
	require.Error(t, err)
}
