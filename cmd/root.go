package cmd

import (
	"context"
	"github.com/spf13/cobra"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func Start() {
	cfg := newCfg("env")
	slog.SetLogLoggerLevel(slog.Level(cfg.GetInt("log.level")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := newTracerProvider(ctx, cfg)
	defer shutdownTracer()

	var payloadPath string

	rootCmd := &cobra.Command{Use: "concert-ticket-pipeline"}
	invokeCmd := &cobra.Command{
		Use:   "invoke:purchase",
		Short: "Run one purchase from a payload file or stdin",
		Run: func(cmd *cobra.Command, args []string) {
			runInvokePurchaseCmd(ctx, cfg, payloadPath, cmd.OutOrStdout())
		},
	}
	invokeCmd.Flags().StringVarP(&payloadPath, "file", "f", "", "payload file, stdin when empty or -")

	cmd := []*cobra.Command{
		{
			Use:   "serve-http",
			Short: "Run HTTP server",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx, cfg)
			},
		},
		invokeCmd,
		{
			Use:   "serve-queue:payment",
			Short: "Run queue payment processor",
			Run: func(cmd *cobra.Command, args []string) {
				runQueuePaymentCmd(ctx, cfg)
			},
		},
		{
			Use:   "serve-queue:seat-inventory",
			Short: "Run queue seat inventory updater",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueSeatInventoryCmd(ctx, cfg)
			},
		},
		{
			Use:   "serve-queue:fan-reward",
			Short: "Run queue fan reward processor",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueFanRewardCmd(ctx, cfg)
			},
		},
		{
			Use:   "serve-queue:notification",
			Short: "Run queue notification dispatcher",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueNotificationCmd(ctx, cfg)
			},
		},
		{
			Use:   "serve-queue:notification-log",
			Short: "Run queue notification logger",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueNotificationLogCmd(ctx, cfg)
			},
		},
		{
			Use:   "migrate:up",
			Short: "Apply database migrations",
			Run: func(cmd *cobra.Command, args []string) {
				runMigrateCmd(ctx, cfg, true)
			},
		},
		{
			Use:   "migrate:down",
			Short: "Roll back the latest database migration",
			Run: func(cmd *cobra.Command, args []string) {
				runMigrateCmd(ctx, cfg, false)
			},
		},
		{
			Use:   "dev",
			Short: "Run dev server, for testing purpose",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx, cfg)
			},
			PreRun: func(cmd *cobra.Command, args []string) {
				go func() {
					runQueuePaymentCmd(ctx, cfg)
				}()
				go func() {
					runQueueSeatInventoryCmd(ctx, cfg)
				}()
				go func() {
					runQueueFanRewardCmd(ctx, cfg)
				}()
				go func() {
					runQueueNotificationCmd(ctx, cfg)
				}()
				go func() {
					runQueueNotificationLogCmd(ctx, cfg)
				}()
			},
		},
	}

	rootCmd.AddCommand(cmd...)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
