package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemDesc-Engine/internal/config"
	"github.com/turtacn/ChemDesc-Engine/internal/testutil"
)

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := config.HTTPConfig{
		Host:            "127.0.0.1",
		Port:            0, // ephemeral would need a listener; use a high fixed port
		ShutdownTimeout: time.Second,
	}
	cfg.Port = 39181

	srv := NewServer(cfg, testRouter(t), testutil.NewMockLogger())
	assert.Equal(t, "127.0.0.1:39181", srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	var resp *http.Response
	var err error
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + srv.Addr() + "/healthz")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, <-done)
}
