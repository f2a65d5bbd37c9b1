package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"telegram-codeforces-bot/internal/app"
	"telegram-codeforces-bot/internal/config"
)

var (
	cfg    config.Config
	logger *zap.SugaredLogger
	force  bool
)

var rootCmd = &cobra.Command{
	Use:          "tgcfbot",
	Short:        "Telegram bot that recommends Codeforces problems",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger, err = app.NewLogger(cfg.LogMode)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot (webhook when BOT_BASE_URL is set, long polling otherwise)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch the Codeforces problemset into Firestore",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime) error {
			inserted, err := rt.Ingest(ctx, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "update done with %d new problems\n", inserted)
			return nil
		})
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&force, "force", false, "replace stored problems before ingesting (votes are kept)")
	rootCmd.AddCommand(serveCmd, ingestCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime) error {
		return rt.Serve(ctx)
	})
}

func withRuntime(ctx context.Context, fn func(context.Context, *app.Runtime) error) error {
	rt, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warnw("close runtime", "error", err)
		}
	}()
	return fn(ctx, rt)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
