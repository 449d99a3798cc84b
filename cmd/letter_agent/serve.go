package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cover-letter-agent/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes letter generation, gap analysis, and persistence endpoints. DATABASE_URL and GEMINI_API_KEY are optional; missing ones disable the corresponding features.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
