// Package vocabulary is the persistent vocabulary cache: one Redis hash per
// (normalized word, source language, target language) triple.
package vocabulary

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/lang2lang/vocabd/internal/domain"
)

// store is the consumer interface for the vocabulary repository (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HUpdate(
		ctx context.Context,
		key string,
		update func(current map[string]string) (map[string]string, error),
	) (map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repository stores vocabulary entries keyed by
// <prefix>entry:{source}:{target}:{normalized word}.
type Repository struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a vocabulary repository.
func New(s store, keyPrefix string, logger *zap.Logger) *Repository {
	return &Repository{store: s, prefix: keyPrefix, logger: logger}
}

func (r *Repository) key(word, sourceLanguage, targetLanguage string) string {
	return r.prefix + "entry:" + sourceLanguage + ":" + targetLanguage + ":" + word
}

// Find returns the entry for an already-normalized word, or
// domain.ErrEntryNotFound. Callers must normalize the word themselves;
// Find performs an exact point lookup.
func (r *Repository) Find(
	ctx context.Context, word, sourceLanguage, targetLanguage string,
) (domain.VocabularyEntry, error) {
	key := r.key(word, sourceLanguage, targetLanguage)

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("find vocabulary entry: %w", err)
	}
	if len(fields) == 0 {
		return domain.VocabularyEntry{}, domain.ErrEntryNotFound
	}
	return entryFromFields(key, fields), nil
}

// Upsert creates or merges a vocabulary entry. The draft word may carry
// original casing; it is normalized here before keying. When a row already
// exists, translation/part-of-speech/gender are merged field-by-field with
// domain.Combine rather than overwritten, so concurrent upserts for the
// same word commute. The read-merge-write runs atomically via the store's
// optimistic HUpdate. Returns the entry as persisted after the merge.
func (r *Repository) Upsert(
	ctx context.Context, draft domain.EntryDraft,
) (domain.VocabularyEntry, error) {
	word := domain.Normalize(draft.Word)
	key := r.key(word, draft.SourceLanguage, draft.TargetLanguage)

	fields, err := r.store.HUpdate(ctx, key, func(current map[string]string) (map[string]string, error) {
		if current == nil {
			return map[string]string{
				fieldWord:           word,
				fieldTranslation:    domain.Combine(draft.Translation),
				fieldPartOfSpeech:   domain.Combine(draft.PartOfSpeech),
				fieldGender:         domain.Combine(draft.Gender),
				fieldSourceLanguage: draft.SourceLanguage,
				fieldTargetLanguage: draft.TargetLanguage,
			}, nil
		}

		next := make(map[string]string, len(current))
		for k, v := range current {
			next[k] = v
		}
		next[fieldTranslation] = domain.Combine(current[fieldTranslation], draft.Translation)
		next[fieldPartOfSpeech] = domain.Combine(current[fieldPartOfSpeech], draft.PartOfSpeech)
		next[fieldGender] = domain.Combine(current[fieldGender], draft.Gender)
		return next, nil
	})
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("upsert vocabulary entry: %w", err)
	}

	return entryFromFields(key, fields), nil
}

// GetByTarget finds an entry by word and target language across all source
// languages, returning the first match. The word is normalized here since
// this serves the raw query-parameter lookup endpoint.
func (r *Repository) GetByTarget(
	ctx context.Context, word, targetLanguage string,
) (domain.VocabularyEntry, error) {
	normalized := domain.Normalize(word)
	pattern := r.prefix + "entry:*:" + targetLanguage + ":" + normalized

	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("scan vocabulary entries: %w", err)
	}
	if len(keys) == 0 {
		return domain.VocabularyEntry{}, domain.ErrEntryNotFound
	}
	sort.Strings(keys) // SCAN order is unspecified; keep the pick deterministic

	fields, err := r.store.HGetAll(ctx, keys[0])
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("get vocabulary entry: %w", err)
	}
	if len(fields) == 0 {
		return domain.VocabularyEntry{}, domain.ErrEntryNotFound
	}
	return entryFromFields(keys[0], fields), nil
}

// ListByLanguage returns all entries for a target language, sorted by key.
func (r *Repository) ListByLanguage(
	ctx context.Context, targetLanguage string,
) ([]domain.VocabularyEntry, error) {
	pattern := r.prefix + "entry:*:" + targetLanguage + ":*"

	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan vocabulary entries: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	fieldSets, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary entries: %w", err)
	}

	entries := make([]domain.VocabularyEntry, 0, len(fieldSets))
	for i, fields := range fieldSets {
		if len(fields) == 0 {
			// Key expired or deleted between SCAN and HGETALL.
			r.logger.Debug("vocabulary key vanished during list", zap.String("key", keys[i]))
			continue
		}
		entries = append(entries, entryFromFields(keys[i], fields))
	}
	return entries, nil
}
