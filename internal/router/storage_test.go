package router_test

import (
	"context"
	"testing"
	"time"

	"symptom-tracker/internal/config"
	"symptom-tracker/internal/platform/logger"
	"symptom-tracker/internal/ports/auth"
	"symptom-tracker/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage_SQLiteIncludesCredentials(t *testing.T) {
	ctx := context.Background()

	repos, closeFn, err := router.OpenStorage(ctx, config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	require.NotNil(t, repos.Credentials)
	require.NoError(t, repos.Credentials.CreateCredential(ctx, auth.Credential{
		UserID: "u-1", Email: "a@b.com", PasswordHash: []byte("h"), CreatedAt: time.Now().UTC(),
	}))
	c, err := repos.Credentials.CredentialByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
}

func TestOpenStorage_MemoryAndUnknown(t *testing.T) {
	repos, closeFn, err := router.OpenStorage(context.Background(), config.StorageConfig{Driver: config.DriverMemory}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, repos.Credentials)
	assert.NoError(t, closeFn())

	_, _, err = router.OpenStorage(context.Background(), config.StorageConfig{Driver: "mongo"}, logger.Nop())
	require.Error(t, err)
}
