// Package vocabulary exposes read access to cached vocabulary entries.
package vocabulary

import (
	"context"
	"fmt"

	"github.com/lang2lang/vocabd/internal/domain"
)

// Service serves vocabulary reads.
type Service struct {
	repo Repository
}

// New creates a vocabulary read service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the entry for a word in a target language, across any source
// language. The word is normalized before the lookup.
func (s *Service) Get(ctx context.Context, word, targetLanguage string) (domain.VocabularyEntry, error) {
	entry, err := s.repo.GetByTarget(ctx, word, targetLanguage)
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("get vocabulary entry: %w", err)
	}
	return entry, nil
}

// ListByLanguage returns every entry stored for a target language.
func (s *Service) ListByLanguage(ctx context.Context, targetLanguage string) ([]domain.VocabularyEntry, error) {
	entries, err := s.repo.ListByLanguage(ctx, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary entries: %w", err)
	}
	return entries, nil
}
