package main

import (
	"context"
	"fmt"
	"os"

	"github.com/natserract/icontact/pkg/config"
	"github.com/natserract/icontact/pkg/icontact"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newClient is swapped in tests
var newClient = func(cfg *config.Config, logger *zap.Logger) icontact.Client {
	return icontact.NewIContactWithLogger(cfg, logger)
}

func newRootCommand(logger *zap.Logger) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "icontact",
		Short: "Call the iContact API from the shell",
		Long: `Call the iContact API using credentials from the environment or a .env file
(ICONTACT_USERNAME, ICONTACT_APP_ID, ICONTACT_APP_PASSWORD, ICONTACT_ACCOUNT_ID,
ICONTACT_CLIENT_FOLDER_ID, ICONTACT_BASE_URL, ICONTACT_SANDBOX).

Targets are written as resource[/id[/id]], for example contacts/42 or
segment-criteria/7/3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log request headers and response bodies")

	clientFor := func() (icontact.Client, error) {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("Failed to load config", zap.Error(err))
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return newClient(cfg, logger), nil
	}

	root.AddCommand(
		newGetCommand(clientFor, &verbose, logger),
		newWriteCommand("post", clientFor, &verbose),
		newWriteCommand("put", clientFor, &verbose),
		newWriteCommand("delete", clientFor, &verbose),
	)
	return root
}

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := newRootCommand(logger)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
