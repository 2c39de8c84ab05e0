package main

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/transcode"
	"github.com/spf13/cobra"
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Flatten a resume document into an ordered block list",
	Long:  "Reads a resume document, validates it and writes the equivalent list of editable blocks as JSON.",
	RunE:  runDecompose,
}

var (
	decomposeInput  string
	decomposeOutput string
)

func init() {
	decomposeCmd.Flags().StringVarP(&decomposeInput, "in", "i", "", "Path to the document JSON file (required)")
	decomposeCmd.Flags().StringVarP(&decomposeOutput, "out", "o", "", "Path to write the block list (default stdout)")
	_ = decomposeCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(decomposeCmd)
}

func runDecompose(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	doc, err := readDocument(decomposeInput)
	if err != nil {
		return err
	}

	list := transcode.Decompose(doc)
	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDocument(doc)
		printer.PrintBlocks(list)
	}

	data, err := marshalIndent(list)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, decomposeOutput, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(statusOut(cmd, decomposeOutput), "Decomposed %s into %d blocks\n", doc.ID, len(list))
	return nil
}
