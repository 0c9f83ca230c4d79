package main

import (
	"Feedback_Backend/internal/config"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	envFile       string
	port          string
	storageDriver string
	feedbackFile  string
	dev           bool
	verbose       bool
)

// rootCmd starts the feedback web server.
var rootCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Serve the feedback page and store submissions in a JSON file",
	Long: `feedback serves a single feedback form, appends every submission to a
JSON array on disk (or in MongoDB) and lists the stored feedback as JSON.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv(envFile)

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("port") {
			cfg.Port = port
		}
		if flags.Changed("storage") {
			cfg.StorageDriver = storageDriver
		}
		if flags.Changed("feedback-file") {
			cfg.FeedbackFile = feedbackFile
		}
		if dev {
			cfg.Dev = true
		}
		if verbose || cfg.Dev {
			cfg.LogLevel = "debug"
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return run(cmd.Context(), cfg)
	},
}

// Execute runs the root command until it fails or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "Path to the .env file")
	flags.StringVarP(&port, "port", "p", "5000", "HTTP port (overrides PORT)")
	flags.StringVar(&storageDriver, "storage", config.StorageFile, "Storage driver: file or mongo (overrides STORAGE_DRIVER)")
	flags.StringVarP(&feedbackFile, "feedback-file", "f", "feedback.json", "Path of the feedback store (overrides FEEDBACK_FILE)")
	flags.BoolVar(&dev, "dev", false, "Development mode: debug logging and route listing")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
