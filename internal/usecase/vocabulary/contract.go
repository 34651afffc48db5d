package vocabulary

import (
	"context"

	"github.com/lang2lang/vocabd/internal/domain"
)

// Repository defines the read contract for stored vocabulary entries.
type Repository interface {
	GetByTarget(ctx context.Context, word, targetLanguage string) (domain.VocabularyEntry, error)
	ListByLanguage(ctx context.Context, targetLanguage string) ([]domain.VocabularyEntry, error)
}
