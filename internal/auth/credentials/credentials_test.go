package credentials

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("officer_password")
	require.NoError(t, err)

	require.NoError(t, Verify("officer_password", hash))

	err = Verify("wrong", hash)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))

	_, err = Hash("")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = Hash(strings.Repeat("x", 80))
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
}

func TestParse(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("pairs", func(t *testing.T) {
		got, err := Parse(" officer_user:" + string(hash) + ", driver_1:" + string(hash) + ",")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"officer_user": string(hash),
			"driver_1":     string(hash),
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := Parse("officer_user")
		require.Error(t, err)
	})

	t.Run("plaintext password", func(t *testing.T) {
		_, err := Parse("officer_user:officer_password")
		require.Error(t, err)
	})
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	seed := map[string]string{"officer_user": "h1"}
	store := NewInMemory(seed)
	seed["officer_user"] = "mutated"

	hash, err := store.Find(ctx, "officer_user")
	require.NoError(t, err)
	assert.Equal(t, "h1", hash)

	_, err = store.Find(ctx, "nobody")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, store.Upsert(ctx, "nobody", "h2"))
	hash, err = store.Find(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "h2", hash)
}
