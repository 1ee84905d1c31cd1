package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/rendering/docx"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a tailored draft file to HTML, PDF or DOCX",
	Long:  "Validates a draft JSON file, merges its AI overlay and writes the document for the chosen template and target. The draft must already carry an aiOverlay.",
	RunE:  runRender,
}

var (
	renderDraftFile  string
	renderTemplateID string
	renderTarget     string
	renderOutputFile string
	renderChromePath string
	renderTimeout    time.Duration
	renderVerbose    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderDraftFile, "draft", "d", "", "Path to draft JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplateID, "template", "t", "", "Template id (default: the draft's, then "+config.DefaultTemplate+")")
	renderCmd.Flags().StringVar(&renderTarget, "target", string(rendering.TargetPDF), "Output target: screen, pdf or docx")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output file (required)")
	renderCmd.Flags().StringVar(&renderChromePath, "chrome", os.Getenv("CHROME_PATH"), "Chrome binary for PDF output")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", pdf.DefaultTimeout, "PDF print timeout")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print the draft and layout")

	_ = renderCmd.MarkFlagRequired("draft")
	_ = renderCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	target, err := rendering.ParseTarget(renderTarget)
	if err != nil {
		return err
	}

	if err := schemas.ValidateFile(schemas.DraftSchema, renderDraftFile); err != nil {
		return fmt.Errorf("invalid draft file: %w", err)
	}
	content, err := os.ReadFile(renderDraftFile)
	if err != nil {
		return fmt.Errorf("failed to read draft file: %w", err)
	}
	var d types.ResumeDraft
	if err := json.Unmarshal(content, &d); err != nil {
		return fmt.Errorf("failed to unmarshal draft JSON: %w", err)
	}

	if err := reconcile.Ready(d); err != nil {
		return fmt.Errorf("draft is not ready to render: %w", err)
	}
	resume := reconcile.Reconcile(d)

	templateID := renderTemplateID
	if templateID == "" {
		templateID = d.TemplateID
	}
	if templateID == "" {
		templateID = config.DefaultTemplate
	}

	doc, err := rendering.DefaultRegistry().Render(templateID, resume, target)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if renderVerbose {
		printer.PrintDraft(d)
		printer.PrintResume(resume)
		printer.PrintDocument(doc)
	}

	var out []byte
	switch target {
	case rendering.TargetScreen:
		out = []byte(doc.HTML)
	case rendering.TargetDOCX:
		out, err = docx.Bytes(doc)
	case rendering.TargetPDF:
		encoder := pdf.NewChromeEncoder(renderChromePath, renderTimeout)
		encoder.Verbose = renderVerbose
		out, err = encoder.Encode(context.Background(), doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", target, err)
	}

	outputDir := filepath.Dir(renderOutputFile)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(renderOutputFile, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s with template %s (%d pages)\n", target, templateID, len(doc.Pages))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", renderOutputFile)
	return nil
}
