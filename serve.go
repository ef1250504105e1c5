package main

import (
	"context"
	"fmt"
	"log"

	"badge-verifier/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, primary, files, err := openStores(context.Background())
	if err != nil {
		return err
	}
	defer primary.Close()

	r := gin.New()
	r.Use(gin.Logger())
	router.Setup(r, primary, files)

	log.Printf("listening on :%s ...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
