package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelValidations bounds how many files are checked at once
const maxParallelValidations = 8

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate resume documents",
	Long:  "Checks each document against the document JSON schema and the field constraints, reporting every invalid file.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	results := make([]error, len(args))

	g, gCtx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelValidations)
	for i, path := range args {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			_, results[i] = readDocument(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for i, path := range args {
		if results[i] != nil {
			invalid++
			_, _ = fmt.Fprintf(out, "✗ %s\n%v\n", path, results[i])
			continue
		}
		if verbose {
			_, _ = fmt.Fprintf(out, "✓ %s\n", path)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d documents invalid", invalid, len(args))
	}
	_, _ = fmt.Fprintf(out, "All %d documents valid\n", len(args))
	return nil
}
