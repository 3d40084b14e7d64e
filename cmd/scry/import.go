package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phrazzld/scry-cards/internal/service"
)

// runImport loads review states from a YAML or JSON file into the card
// database. The cards must have been registered before, by drill or stats.
func runImport(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("import", env)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(env.stderr, "error: expected one review state file")
		return errUsage
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	records, err := service.ReadReviewStates(f)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	app, err := newApplication(ctx, env)
	if err != nil {
		return err
	}
	defer app.cleanup()

	result, err := app.cardService.ImportReviewStates(ctx, records)
	if err != nil {
		return err
	}
	printWarnings(env.stderr, result.Warnings)

	fmt.Fprintf(env.stdout, "Imported %d of %d review states\n", result.Imported, len(records))
	return nil
}
