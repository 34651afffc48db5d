package lookup

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/lang2lang/vocabd/internal/domain"
)

// mockCache implements CacheStore over an in-memory map keyed by
// word|source|target. Upsert applies the same merge the real store does.
type mockCache struct {
	findFn   func(ctx context.Context, word, src, tgt string) (domain.VocabularyEntry, error)
	upsertFn func(ctx context.Context, draft domain.EntryDraft) (domain.VocabularyEntry, error)

	entries     map[string]domain.VocabularyEntry
	findCalls   int
	upsertCalls int
}

func cacheKey(word, src, tgt string) string {
	return word + "|" + src + "|" + tgt
}

func (m *mockCache) Find(ctx context.Context, word, src, tgt string) (domain.VocabularyEntry, error) {
	m.findCalls++
	if m.findFn != nil {
		return m.findFn(ctx, word, src, tgt)
	}
	entry, ok := m.entries[cacheKey(word, src, tgt)]
	if !ok {
		return domain.VocabularyEntry{}, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (m *mockCache) Upsert(ctx context.Context, draft domain.EntryDraft) (domain.VocabularyEntry, error) {
	m.upsertCalls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, draft)
	}
	word := domain.Normalize(draft.Word)
	key := cacheKey(word, draft.SourceLanguage, draft.TargetLanguage)
	entry, ok := m.entries[key]
	if !ok {
		entry = domain.VocabularyEntry{
			ID:             key,
			Word:           word,
			Translation:    domain.Combine(draft.Translation),
			PartOfSpeech:   domain.Combine(draft.PartOfSpeech),
			Gender:         domain.Combine(draft.Gender),
			SourceLanguage: draft.SourceLanguage,
			TargetLanguage: draft.TargetLanguage,
		}
	} else {
		entry.Translation = domain.Combine(entry.Translation, draft.Translation)
		entry.PartOfSpeech = domain.Combine(entry.PartOfSpeech, draft.PartOfSpeech)
		entry.Gender = domain.Combine(entry.Gender, draft.Gender)
	}
	if m.entries == nil {
		m.entries = make(map[string]domain.VocabularyEntry)
	}
	m.entries[key] = entry
	return entry, nil
}

// mockGateway implements Gateway with a canned per-word sense table.
type mockGateway struct {
	translateFn func(ctx context.Context, words []string, src, tgt string) ([]domain.RawTranslation, error)

	senses    map[string][]domain.RawTranslation
	calls     int
	lastWords []string
}

func (m *mockGateway) TranslateBatch(
	ctx context.Context, words []string, src, tgt string,
) ([]domain.RawTranslation, error) {
	m.calls++
	m.lastWords = words
	if m.translateFn != nil {
		return m.translateFn(ctx, words, src, tgt)
	}
	var out []domain.RawTranslation
	for _, w := range words {
		out = append(out, m.senses[w]...)
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *mockCache, *mockGateway) {
	t.Helper()
	cache := &mockCache{entries: make(map[string]domain.VocabularyEntry)}
	gw := &mockGateway{senses: make(map[string][]domain.RawTranslation)}
	return New(cache, gw, nil, zap.NewNop()), cache, gw
}
