package lookup

import (
	"context"

	"github.com/lang2lang/vocabd/internal/domain"
)

// CacheStore defines the vocabulary cache contract.
type CacheStore interface {
	Find(ctx context.Context, word, sourceLanguage, targetLanguage string) (domain.VocabularyEntry, error)
	Upsert(ctx context.Context, draft domain.EntryDraft) (domain.VocabularyEntry, error)
}

// Gateway translates batches of words via an AI provider.
type Gateway interface {
	TranslateBatch(
		ctx context.Context, words []string, sourceLanguage, targetLanguage string,
	) ([]domain.RawTranslation, error)
}
