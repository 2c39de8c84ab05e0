package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Show the block list of a document",
	Long:  "Loads a document from a file (--in) or the document store (--id) into an editor and prints its blocks in order.",
	RunE:  runBlocks,
}

var (
	blocksInput      string
	blocksDocumentID string
	blocksSelect     string
)

func init() {
	blocksCmd.Flags().StringVarP(&blocksInput, "in", "i", "", "Path to the document JSON file")
	blocksCmd.Flags().StringVar(&blocksDocumentID, "id", "", "Id of a stored document")
	blocksCmd.Flags().StringVar(&blocksSelect, "select", "", "Block id to mark as selected")
	blocksCmd.MarkFlagsOneRequired("in", "id")
	blocksCmd.MarkFlagsMutuallyExclusive("in", "id")
	rootCmd.AddCommand(blocksCmd)
}

func runBlocks(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	var doc *types.Document
	if blocksInput != "" {
		doc, err = readDocument(blocksInput)
	} else {
		doc, err = loadStoredDocument(context.Background(), cfg.DatabaseURL, cfg.SQLitePath, blocksDocumentID)
	}
	if err != nil {
		return err
	}

	ed := editor.Load(doc)
	if blocksSelect != "" {
		if _, ok := ed.Block(blocksSelect); !ok {
			return fmt.Errorf("block not found: %s", blocksSelect)
		}
		ed.SelectBlock(blocksSelect)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintDocument(doc)
	}
	printer.PrintState(ed.State())
	return nil
}
