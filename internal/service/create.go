package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/extract"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/render"
)

// CreateCard appends content to the markdown file at path, creating the file
// if needed, and registers the file. It returns the stored card.
func (s *CardService) CreateCard(ctx context.Context, path string, content domain.CardContent) (domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	path, err := extract.ValidateCardPath(path)
	if err != nil {
		return domain.Card{}, NewServiceError("create", "invalid card path", err)
	}
	if content == nil {
		return domain.Card{}, NewServiceError("create", "invalid card", domain.ErrCardContentEmpty)
	}
	if err := content.Validate(); err != nil {
		return domain.Card{}, NewServiceError("create", "invalid card", err)
	}

	text := render.CardMarkdown(content)
	parsed, err := extract.ContentToCard(path, text, 0, strings.Count(text, "\n"))
	if err != nil {
		return domain.Card{}, NewServiceError("create", "invalid card", err)
	}
	if parsed.Content != content {
		return domain.Card{}, NewServiceError("create", "invalid card", ErrCardRoundTrip)
	}

	if err := appendCard(path, text); err != nil {
		log.Debug("failed to write card",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return domain.Card{}, NewServiceError("create", "failed to write card", err)
	}

	result, err := s.RegisterPaths(ctx, []string{path})
	if err != nil {
		return domain.Card{}, err
	}
	if len(result.Cards) == 0 {
		return domain.Card{}, NewServiceError("create", "card not found after writing "+path, nil)
	}

	card := result.Cards[len(result.Cards)-1]
	log.Info("card created",
		slog.String("path", path),
		slog.String("card_hash", card.Hash),
		slog.String("kind", string(card.Kind())))
	return card, nil
}

// appendCard appends text to path as a new segment starting on its own line.
// No blank line is inserted: it would join the previous segment and change
// that card's hash.
func appendCard(path, text string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var prefix string
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		prefix = "\n"
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(prefix + text); err != nil {
		_ = f.Close()
		return fmt.Errorf("append card: %w", err)
	}
	return f.Close()
}
