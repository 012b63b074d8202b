package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/LuisBarroso37/kvs/internal/client"
	"github.com/LuisBarroso37/kvs/internal/server"
	"github.com/LuisBarroso37/kvs/pkg/kvs"
	"github.com/LuisBarroso37/kvs/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerServesSetGetRemoveOverTCP(t *testing.T) {
	dir := t.TempDir()
	log := zap.NewNop().Sugar()

	engine, err := kvs.Open(context.Background(), log, options.WithDataDir(dir))
	require.NoError(t, err)
	defer engine.Close()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(engine, log, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	c, err := client.Dial(listener.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("k", "v"))

	value, ok, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)

	_, ok, err = c.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Remove("k"))
	require.ErrorIs(t, c.Remove("k"), client.ErrKeyNotFound)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
