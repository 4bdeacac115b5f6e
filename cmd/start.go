package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manatan-gateway/core/config"
	"manatan-gateway/core/logger"
	"manatan-gateway/feature/gateway"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var noCORS bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gateway",
	Long:  `Launches the embedded backend and starts the public router in front of it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Build State (launches the embedded backend)
		state, err := gateway.BuildState(cmd.Context(), cfg, logg)
		if err != nil {
			logg.Error("Failed to build state", zap.Error(err))
			return err
		}

		// 4. Build the public router
		build := gateway.BuildRouter
		if noCORS {
			build = gateway.BuildRouterWithoutCORS
		}
		app := build(state)

		// 5. Start Server
		go func() {
			logg.Info("Starting gateway",
				zap.String("addr", cfg.Server.Addr()),
				zap.String("backend", state.BackendURL),
			)
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down gateway...")
		_ = app.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := state.Close(ctx); err != nil {
			logg.Warn("Backend shutdown failed", zap.Error(err))
		}
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVar(&noCORS, "no-cors", false, "serve without the permissive CORS layer")
	RootCmd.AddCommand(startCmd)
}
