package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/transcode"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Rebuild a resume document from a block list",
	Long: "Reads a JSON block list and composes it back into a resume document. Document-level fields " +
		"that blocks do not carry (id, template, metadata) come from --base or from the flags.",
	RunE: runCompose,
}

var (
	composeBlocks   string
	composeBase     string
	composeID       string
	composeTemplate string
	composeOutput   string
)

func init() {
	composeCmd.Flags().StringVarP(&composeBlocks, "blocks", "b", "", "Path to the block list JSON file (required)")
	composeCmd.Flags().StringVar(&composeBase, "base", "", "Document to take id, template and metadata from")
	composeCmd.Flags().StringVar(&composeID, "id", "", "Document id (overrides --base)")
	composeCmd.Flags().StringVarP(&composeTemplate, "template", "t", "", "Template name (overrides --base)")
	composeCmd.Flags().StringVarP(&composeOutput, "out", "o", "", "Path to write the document (default stdout)")
	_ = composeCmd.MarkFlagRequired("blocks")
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(composeBlocks)
	if err != nil {
		return fmt.Errorf("failed to read blocks file: %w", err)
	}
	if err := schemas.ValidateBlocksJSON(data); err != nil {
		return err
	}

	var list []blocks.Block
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("failed to unmarshal blocks JSON: %w", err)
	}
	for _, b := range list {
		if err := blocks.Validate(b); err != nil {
			return fmt.Errorf("invalid block: %w", err)
		}
	}

	var dc transcode.DocumentContext
	if composeBase != "" {
		base, err := readDocument(composeBase)
		if err != nil {
			return err
		}
		dc = transcode.ContextOf(base)
	}
	if composeID != "" {
		dc.ID = composeID
	}
	if composeTemplate != "" {
		dc.Template = composeTemplate
	}
	if dc.ID == "" {
		return fmt.Errorf("document id is required: pass --id or --base")
	}

	doc, err := transcode.Compose(list, dc)
	if err != nil {
		return err
	}
	if orphans := transcode.Orphans(list); len(orphans) > 0 {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d blocks before the first section were dropped\n", len(orphans))
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(doc)
	}

	out, err := marshalIndent(doc)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, composeOutput, out); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(statusOut(cmd, composeOutput), "Composed %d blocks into %d sections\n", len(list), len(doc.Sections))
	return nil
}
