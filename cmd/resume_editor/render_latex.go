package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/spf13/cobra"
)

var renderLaTeXCmd = &cobra.Command{
	Use:   "render-latex",
	Short: "Render a resume document as LaTeX",
	Long:  "Renders a document from a file (--in) or from the document store (--id) through a LaTeX template.",
	RunE:  runRenderLaTeX,
}

var (
	renderLaTeXInput        string
	renderLaTeXDocumentID   string
	renderLaTeXTemplateFile string
	renderLaTeXOutputFile   string
)

func init() {
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXInput, "in", "i", "", "Path to the document JSON file")
	renderLaTeXCmd.Flags().StringVar(&renderLaTeXDocumentID, "id", "", "Id of a stored document")
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXTemplateFile, "template", "t", "", "Path to LaTeX template file (default built-in)")
	renderLaTeXCmd.Flags().StringVarP(&renderLaTeXOutputFile, "out", "o", "", "Path to output LaTeX file (default stdout)")
	renderLaTeXCmd.MarkFlagsOneRequired("in", "id")
	renderLaTeXCmd.MarkFlagsMutuallyExclusive("in", "id")
	rootCmd.AddCommand(renderLaTeXCmd)
}

func runRenderLaTeX(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	var doc *types.Document
	if renderLaTeXInput != "" {
		doc, err = readDocument(renderLaTeXInput)
	} else {
		doc, err = loadStoredDocument(context.Background(), cfg.DatabaseURL, cfg.SQLitePath, renderLaTeXDocumentID)
	}
	if err != nil {
		return err
	}

	templatePath := renderLaTeXTemplateFile
	if templatePath == "" {
		templatePath = cfg.Template
	}

	latex, err := rendering.RenderLaTeX(doc, templatePath)
	if err != nil {
		return fmt.Errorf("failed to render LaTeX: %w", err)
	}
	if err := writeOutput(cmd, renderLaTeXOutputFile, []byte(latex)); err != nil {
		return err
	}

	if renderLaTeXOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully rendered LaTeX resume\n")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", renderLaTeXOutputFile)
	}
	return nil
}

// loadStoredDocument fetches one document from the configured store
func loadStoredDocument(ctx context.Context, databaseURL, sqlitePath, id string) (*types.Document, error) {
	store, err := db.Open(ctx, databaseURL, sqlitePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	doc, err := store.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load document from store: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	return doc, nil
}
