// Command kvs-server runs the TCP front end for a kvs engine instance.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LuisBarroso37/kvs/internal/config"
	"github.com/LuisBarroso37/kvs/internal/server"
	"github.com/LuisBarroso37/kvs/pkg/boltengine"
	kvserrors "github.com/LuisBarroso37/kvs/pkg/errors"
	"github.com/LuisBarroso37/kvs/pkg/kvengine"
	"github.com/LuisBarroso37/kvs/pkg/kvs"
	"github.com/LuisBarroso37/kvs/pkg/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultAddr   = "127.0.0.1:4000"
	defaultEngine = "kvs"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kvs-server",
		Short: "Run a kvs key-value store server",
		RunE:  runServer,
	}

	cmd.Flags().String("addr", defaultAddr, "IP:PORT to listen on")
	cmd.Flags().String("engine", defaultEngine, "engine to use: kvs or sled")
	cmd.Flags().String("data-dir", ".", "directory holding the engine's data")

	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("engine", cmd.Flags().Lookup("engine"))
	viper.BindPFlag("data-dir", cmd.Flags().Lookup("data-dir"))
	viper.SetEnvPrefix("KVS")
	viper.AutomaticEnv()

	return cmd
}

func runServer(cmd *cobra.Command, args []string) error {
	addr := viper.GetString("addr")
	engineName := viper.GetString("engine")
	dataDir := viper.GetString("data-dir")

	if engineName != "kvs" && engineName != "sled" {
		return kvserrors.NewEngineError(
			nil, kvserrors.ErrorCodeUnknownEngine, fmt.Sprintf("unknown engine %q: must be \"kvs\" or \"sled\"", engineName),
		).WithEngine(engineName)
	}

	if err := config.EnsureEngine(dataDir, engineName); err != nil {
		return err
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	var engine kvengine.Engine
	switch engineName {
	case "kvs":
		engine, err = kvs.Open(cmd.Context(), log, options.WithDataDir(dataDir))
	case "sled":
		engine, err = boltengine.Open(filepath.Join(dataDir, "kvs.bolt"))
	}
	if err != nil {
		return fmt.Errorf("opening %s engine: %w", engineName, err)
	}
	defer engine.Close()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer listener.Close()

	log.Infow("kvs-server listening", "addr", addr, "engine", engineName, "dataDir", dataDir)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(engine, log, 0)
	return srv.Serve(ctx, listener)
}
