package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/extract"
	"github.com/phrazzld/scry-cards/internal/render"
	"github.com/phrazzld/scry-cards/internal/service"
)

// newFlagSet creates a subcommand flag set that reports errors on stderr.
func newFlagSet(name string, env *cliEnv) *flag.FlagSet {
	fs := flag.NewFlagSet("scry "+name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

// parseFlags parses args, turning any parse failure other than -h into
// errUsage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	return nil
}

// pathsOrCwd returns the positional paths, defaulting to the current directory.
func pathsOrCwd(fs *flag.FlagSet) []string {
	if fs.NArg() == 0 {
		return []string{"."}
	}
	return fs.Args()
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// runDrill registers the cards under the given paths and prints the ones due
// for review.
func runDrill(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("drill", env)
	cardLimit := fs.Int("card-limit", service.NoLimit, "Maximum number of cards to show (-1: no limit)")
	newCardLimit := fs.Int("new-card-limit", service.NoLimit, "Maximum number of never-reviewed cards to show (-1: no limit)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	app, err := newApplication(ctx, env)
	if err != nil {
		return err
	}
	defer app.cleanup()

	result, err := app.cardService.RegisterPaths(ctx, pathsOrCwd(fs))
	if err != nil {
		return err
	}
	printWarnings(env.stderr, result.Warnings)

	queue, err := app.cardService.DueQueue(ctx, result.Cards,
		service.DueLimits{CardLimit: *cardLimit, NewCardLimit: *newCardLimit})
	if err != nil {
		return err
	}

	if len(queue) == 0 {
		fmt.Fprintln(env.stdout, "No cards due.")
		return nil
	}

	for i, rec := range queue {
		if i > 0 {
			fmt.Fprintln(env.stdout)
		}
		fmt.Fprint(env.stdout, render.CardText(rec.Card))
	}
	fmt.Fprintf(env.stdout, "\n%d of %d cards due\n", len(queue), len(result.Cards))
	return nil
}

// runCreate appends a basic or cloze card to a markdown file.
func runCreate(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("create", env)
	path := fs.String("path", "", "Markdown file to append the card to")
	question := fs.String("q", "", "Question of a basic card")
	answer := fs.String("a", "", "Answer of a basic card")
	cloze := fs.String("c", "", "Text of a cloze card, with the hidden part in [brackets]")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *path == "" {
		fmt.Fprintln(env.stderr, "error: --path is required")
		return errUsage
	}

	content, err := cardContent(*question, *answer, *cloze)
	if err != nil {
		fmt.Fprintf(env.stderr, "error: %v\n", err)
		return errUsage
	}

	app, err := newApplication(ctx, env)
	if err != nil {
		return err
	}
	defer app.cleanup()

	card, err := app.cardService.CreateCard(ctx, *path, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.stdout, "Created %s card at %s:%d\n", card.Kind(), card.FilePath, card.Range.Start+1)
	return nil
}

// cardContent builds the content of a new card from exactly one of the basic
// (-q/-a) or cloze (-c) flag groups.
func cardContent(question, answer, cloze string) (domain.CardContent, error) {
	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	basic := question != "" || answer != ""

	switch {
	case basic && cloze != "":
		return nil, fmt.Errorf("use either -q/-a or -c, not both")
	case basic:
		if question == "" || answer == "" {
			return nil, fmt.Errorf("a basic card needs both -q and -a")
		}
		return domain.Basic{Question: question, Answer: answer}, nil
	case cloze != "":
		c, err := extract.NewCloze(cloze)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("either -q and -a, or -c, is required")
	}
}

// runStats registers the cards under the given paths and reports on them.
func runStats(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("stats", env)
	format := fs.String("format", render.FormatText, "Output format: "+strings.Join(render.Formats, ", "))
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !slices.Contains(render.Formats, *format) {
		fmt.Fprintf(env.stderr, "error: unknown format %q (expected one of %s)\n", *format, strings.Join(render.Formats, ", "))
		return errUsage
	}

	app, err := newApplication(ctx, env)
	if err != nil {
		return err
	}
	defer app.cleanup()

	result, err := app.cardService.RegisterPaths(ctx, pathsOrCwd(fs))
	if err != nil {
		return err
	}
	printWarnings(env.stderr, result.Warnings)

	cs, err := app.cardService.Stats(ctx, result.Cards)
	if err != nil {
		return err
	}

	return render.Stats(env.stdout, *format, cs.Report())
}
