// Package main provides the resume_builder command: the HTTP API server plus local
// template and rendering tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Build, tailor and render resumes",
	Long: `resume_builder serves the resume builder API and renders drafts locally.

A draft is collected section by section, optionally tailored to a job
description by an AI collaborator, and rendered through a fixed set of
visual templates as PDF, DOCX or HTML.`,
	Version:      version,
	SilenceUsage: true,
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
