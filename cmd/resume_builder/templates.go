package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the built-in resume templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List template ids and their layout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(rendering.DefaultRegistry().Styles())
		return nil
	},
}

var templatesVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Render the sample resume through every template and target",
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry := rendering.DefaultRegistry()
		if err := registry.Verify(context.Background(), rendering.SampleResume()); err != nil {
			return fmt.Errorf("template verification failed: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "All %d templates render on every target\n", len(registry.IDs()))
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesVerifyCmd)
	rootCmd.AddCommand(templatesCmd)
}
