package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/domain/srs"
	"github.com/phrazzld/scry-cards/internal/extract"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/stats"
	"github.com/phrazzld/scry-cards/internal/store"
)

// Options configures a CardService. Zero fields fall back to defaults.
type Options struct {
	Extract extract.Options
	Stats   stats.Params
	Model   *srs.RecallModel

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// CardService orchestrates extraction, the card store and the statistics
// aggregator.
type CardService struct {
	store  store.CardStore
	opts   Options
	logger *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if the store is nil.
func NewCardService(cardStore store.CardStore, opts Options, logger *slog.Logger) (*CardService, error) {
	if cardStore == nil {
		return nil, ErrNilStore
	}

	if opts.Model == nil {
		opts.Model = srs.NewDefaultRecallModel()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &CardService{
		store:  cardStore,
		opts:   opts,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

// RegisterResult is the outcome of RegisterPaths.
type RegisterResult struct {
	// Cards are all cards found, in path order and file order.
	Cards []domain.Card

	// Files are the files that were read.
	Files []string

	// Warnings describe paths that were skipped, and segments that were
	// skipped when extraction runs with SkipInvalid.
	Warnings []string
}

// RegisterPaths extracts the cards of every path and stores the ones the store
// does not know yet. A directory contributes every markdown file below it; a
// file is read as is. Paths that do not exist or cannot be read are reported as
// warnings and skipped. A malformed card or a store failure aborts the call.
func (s *CardService) RegisterPaths(ctx context.Context, paths []string) (RegisterResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := RegisterResult{Cards: []domain.Card{}}

	for _, path := range paths {
		files, err := s.resolve(path)
		if err != nil {
			log.Warn("skipping inaccessible path",
				slog.String("path", path),
				slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, inaccessible(path))
			continue
		}
		result.Files = append(result.Files, files...)
	}

	for _, res := range extract.FromFiles(ctx, result.Files, s.opts.Extract) {
		if err := ctx.Err(); err != nil {
			return RegisterResult{}, err
		}

		var invalid *extract.InvalidSegmentsError
		switch {
		case res.Err == nil:
		case errors.As(res.Err, &invalid):
			for _, seg := range invalid.Segments {
				result.Warnings = append(result.Warnings, seg.Error())
			}
		case errors.Is(res.Err, fs.ErrNotExist), errors.Is(res.Err, fs.ErrPermission):
			log.Warn("skipping unreadable file",
				slog.String("path", res.Path),
				slog.String("error", res.Err.Error()))
			result.Warnings = append(result.Warnings, inaccessible(res.Path))
			continue
		default:
			log.Debug("failed to extract cards",
				slog.String("path", res.Path),
				slog.String("error", res.Err.Error()))
			return RegisterResult{}, NewServiceError("register", "failed to extract cards from "+res.Path, res.Err)
		}
		result.Cards = append(result.Cards, res.Cards...)
	}

	if err := s.store.AddCardsBatch(ctx, result.Cards); err != nil {
		return RegisterResult{}, NewServiceError("register", "failed to store cards", err)
	}

	log.Info("cards registered",
		slog.Int("files", len(result.Files)),
		slog.Int("cards", len(result.Cards)),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

// resolve expands path into the files to read.
func (s *CardService) resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	switch {
	case info.IsDir():
		return extract.WalkMarkdown(path)
	case info.Mode().IsRegular():
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("%s is neither a file nor a directory", path)
	}
}

func inaccessible(path string) string {
	return fmt.Sprintf("%s does not exist or is not accessible", path)
}

func cardHashes(cards []domain.Card) []string {
	hashes := make([]string, len(cards))
	for i, c := range cards {
		hashes[i] = c.Hash
	}
	return hashes
}
