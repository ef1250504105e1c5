package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"badge-verifier/internal/lookup"

	"github.com/spf13/cobra"
)

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [text]",
		Short: "Resolve scanned badge text to an employee",
		Long: `Resolve the text decoded from a badge QR code. With no argument the
text is read from stdin, so multi-line payloads can be piped in.

Examples:
  badge-verifier lookup "Employee ID: EMP20240101120000123"
  zbarimg --raw badge.png | badge-verifier lookup`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLookup,
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(b)
	}

	ctx := context.Background()
	_, primary, files, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer primary.Close()

	res := lookup.NewResolver(primary, files).Resolve(ctx, text)
	switch res.Status {
	case lookup.Failed:
		return fmt.Errorf("lookup failed: %w", res.Err)
	case lookup.NotFound:
		fmt.Fprintln(os.Stderr, "no matching employee")
		return nil
	}

	out, err := json.MarshalIndent(res.View(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(out)))
	return nil
}
