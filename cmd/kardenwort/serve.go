// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/kardenwort/kardenwort/internal/server"
	"github.com/kardenwort/kardenwort/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the extraction pipeline as a JSON REST API",
	Long: `Serve runs an HTTP server with the extraction pipeline behind a JSON
API, for browser extensions and reader applications.

Endpoints:

	POST /api/extract   body: {"text":"..."}
	GET  /api/health`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "CORS origin allow-list; empty allows all")

	addResourceFlags(serveCmd)
	addLemmatizationFlags(serveCmd)

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	origins, _ := cmd.Flags().GetStringSlice("allowed-origins")

	srv := server.New(p.extractor, p.analyzer, types.ServeConfig{
		Addr:           addr,
		AllowedOrigins: origins,
	})
	return srv.ListenAndServe()
}
