package main

import (
	"context"
	"fmt"
	"os"

	"badge-verifier/internal/config"
	"badge-verifier/internal/store"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "badge-verifier",
		Short:        "Issue and verify employee badge QR codes",
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStores loads the environment and picks the primary store. The caller closes primary.
func openStores(ctx context.Context) (config.AppConfig, store.Store, *store.FileStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.AppConfig{}, nil, nil, err
	}
	files := store.NewFileStore(cfg.JSONFile)
	return cfg, store.Open(ctx, cfg, files), files, nil
}
