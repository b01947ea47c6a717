package http

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"mechalung/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_GracefulShutdownReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Port = 0 // let the OS pick a free port

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	srv := &httpServer{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		server: echoServer,
	}

	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(context.Background())
	}()

	require.Eventually(t, func() bool {
		return srv.server.ListenerAddr() != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.stop(context.Background()))

	select {
	case err := <-served:
		// A graceful stop must not surface as a serve failure.
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}
