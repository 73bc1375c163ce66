package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/gtd/internal/database"
	authservice "github.com/thenoetrevino/gtd/internal/services/auth"
)

var testAuth = authservice.Config{
	Secret:   []byte("0123456789abcdef0123456789abcdef"),
	Issuer:   "gtd-test",
	TokenTTL: time.Hour,
}

func TestNew(t *testing.T) {
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	app, err := New(db, testAuth, WithLogger(logger))
	require.NoError(t, err)

	assert.NotNil(t, app.AuthService)
	assert.NotNil(t, app.TaskService)
	assert.NotNil(t, app.ProjectService)
	assert.NotNil(t, app.LabelService)
	assert.NotNil(t, app.Repo())
	assert.Same(t, logger, app.Logger)

	assert.NoError(t, app.Ping(context.Background()))
	assert.NoError(t, app.Close())
	assert.Error(t, app.Ping(context.Background()), "ping fails once closed")
}

func TestNew_RejectsWeakSecret(t *testing.T) {
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	defer func() { _ = database.Close(db) }()

	cfg := testAuth
	cfg.Secret = []byte("too-short")

	_, err = New(db, cfg)
	assert.ErrorIs(t, err, authservice.ErrWeakSecret)
}
