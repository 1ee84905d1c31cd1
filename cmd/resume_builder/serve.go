package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigFile string
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the draft, tailoring, import, interview and export endpoints.

Settings come from --config (a JSON file), then environment variables, then defaults.
Flags override both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log collaborator and render details")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	authCfg, err := config.NewAuthConfig()
	if err != nil {
		return fmt.Errorf("failed to load auth config: %w", err)
	}

	srv, err := server.New(context.Background(), cfg, authCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	return srv.Start()
}

// loadServeConfig merges flags over the config file over the environment.
func loadServeConfig() (config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	fileCfg := config.Config{}
	if serveConfigFile != "" {
		loaded, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	if servePort != 0 {
		fileCfg.Port = servePort
	}
	if serveVerbose {
		fileCfg.Verbose = true
	}

	cfg := fileCfg.MergeWithDefaults(env)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
