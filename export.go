package main

import (
	"context"
	"fmt"
	"os"

	"badge-verifier/internal/export"
	"badge-verifier/internal/store"

	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportSearch   string
	exportFilterBy string
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write employee records to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "employees.xlsx", "output file")
	cmd.Flags().StringVar(&exportSearch, "search", "", "only export records containing this text")
	cmd.Flags().StringVar(&exportFilterBy, "filter-by", "all", "field to search (name, employee_id, department, post, all)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	_, primary, _, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer primary.Close()

	recs, err := export.Collect(ctx, primary, exportSearch, store.ParseField(exportFilterBy))
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return err
	}
	if err := export.WriteRecords(f, recs); err != nil {
		f.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", len(recs), exportOutput)
	return nil
}
