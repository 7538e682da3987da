package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestApp_RunAndShutdown(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProd}
	cfg.Storage.Driver = config.DriverMemory
	cfg.Storage.Seed = true
	cfg.Auth.BcryptCost = 4
	cfg.Server.RunAddress = freeAddr(t)
	cfg.Server.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	app, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := fmt.Sprintf("http://%s/api/books/1", cfg.Server.RunAddress)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewApp_BadStorage(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProd}
	cfg.Storage.Driver = "mongo"

	_, err := NewApp(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}
