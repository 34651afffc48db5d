// Package lookup orchestrates phrase lookups: cache first, one batched AI
// call for the misses, merged senses written back through the cache.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lang2lang/vocabd/internal/domain"
)

// Service resolves phrases into per-token vocabulary results.
type Service struct {
	cache   CacheStore
	gateway Gateway
	words   *prometheus.CounterVec
	logger  *zap.Logger
}

// New creates a lookup service. words counts distinct words per lookup by
// resolution outcome (cache_hit, ai_resolved, unresolved); pass nil to
// disable counting.
func New(cache CacheStore, gateway Gateway, words *prometheus.CounterVec, logger *zap.Logger) *Service {
	return &Service{
		cache:   cache,
		gateway: gateway,
		words:   words,
		logger:  logger,
	}
}

// LookupPhrase resolves every whitespace token of nativeText into a
// vocabulary result, in token order, keeping each token's original casing.
// Duplicate tokens share one resolution. Words the cache misses go to the
// gateway in a single batch; a gateway failure degrades those words to the
// undefined sentinel instead of failing the lookup. A cache failure fails
// the whole lookup.
func (s *Service) LookupPhrase(
	ctx context.Context, nativeText, sourceLanguage, targetLanguage string,
) ([]domain.LookupResult, error) {
	tokens := strings.Fields(nativeText)
	if len(tokens) == 0 {
		return nil, nil
	}

	// Distinct normalized words, first-seen order. Tokens that normalize
	// to nothing (pure punctuation) are never looked up.
	var distinct []string
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		w := domain.Normalize(tok)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		distinct = append(distinct, w)
	}

	resolved := make(map[string]domain.VocabularyEntry, len(distinct))
	var missing []string
	for _, w := range distinct {
		entry, err := s.cache.Find(ctx, w, sourceLanguage, targetLanguage)
		switch {
		case err == nil:
			resolved[w] = entry
			s.count("cache_hit")
		case errors.Is(err, domain.ErrEntryNotFound):
			missing = append(missing, w)
		default:
			return nil, fmt.Errorf("find %q: %w", w, err)
		}
	}

	if len(missing) > 0 {
		if err := s.resolveMissing(ctx, missing, sourceLanguage, targetLanguage, resolved); err != nil {
			return nil, err
		}
		for _, w := range missing {
			if _, ok := resolved[w]; !ok {
				s.count("unresolved")
			}
		}
	}

	// One result per token, input order. Tokens that normalized to nothing
	// resolve to the sentinel like any other unresolved word.
	results := make([]domain.LookupResult, 0, len(tokens))
	for _, tok := range tokens {
		w := domain.Normalize(tok)
		entry, ok := resolved[w]
		if !ok {
			results = append(results, domain.LookupResult{
				Word:           tok,
				Translation:    domain.UndefinedTranslation,
				SourceLanguage: sourceLanguage,
				TargetLanguage: targetLanguage,
			})
			continue
		}
		results = append(results, domain.LookupResult{
			Word:           tok,
			Translation:    entry.Translation,
			PartOfSpeech:   entry.PartOfSpeech,
			Gender:         entry.Gender,
			SourceLanguage: sourceLanguage,
			TargetLanguage: targetLanguage,
		})
	}
	return results, nil
}

// resolveMissing translates the missing words in one gateway call and
// upserts each resolved word. Gateway errors are absorbed: the words stay
// unresolved. Cache write errors propagate.
func (s *Service) resolveMissing(
	ctx context.Context, missing []string, sourceLanguage, targetLanguage string,
	resolved map[string]domain.VocabularyEntry,
) error {
	raws, err := s.gateway.TranslateBatch(ctx, missing, sourceLanguage, targetLanguage)
	if err != nil {
		s.logger.Warn("Translation gateway failed, degrading to undefined",
			zap.Int("words", len(missing)),
			zap.String("source_language", sourceLanguage),
			zap.String("target_language", targetLanguage),
			zap.Error(err))
		return nil
	}

	// The gateway echo is not trusted: group its records under the
	// normalized word so casing or accent drift still lands on the
	// requested entry.
	byWord := make(map[string][]domain.RawTranslation, len(missing))
	for _, raw := range raws {
		w := domain.Normalize(raw.Word)
		byWord[w] = append(byWord[w], raw)
	}

	for _, w := range missing {
		translation, partOfSpeech, gender := domain.MergeSenses(byWord[w])
		if translation == "" {
			continue
		}
		entry, err := s.cache.Upsert(ctx, domain.EntryDraft{
			Word:           w,
			Translation:    translation,
			PartOfSpeech:   partOfSpeech,
			Gender:         gender,
			SourceLanguage: sourceLanguage,
			TargetLanguage: targetLanguage,
		})
		if err != nil {
			return fmt.Errorf("upsert %q: %w", w, err)
		}
		resolved[w] = entry
		s.count("ai_resolved")
	}

	// The gateway sometimes volunteers words beyond the batch. Valid extra
	// groups are persisted like any other, but only requested words join
	// the resolved set. A group whose word normalizes to nothing cannot be
	// keyed and is dropped.
	requested := make(map[string]bool, len(missing))
	for _, w := range missing {
		requested[w] = true
	}
	var extras []string
	for w := range byWord {
		if w == "" || requested[w] {
			continue
		}
		extras = append(extras, w)
	}
	sort.Strings(extras)
	for _, w := range extras {
		translation, partOfSpeech, gender := domain.MergeSenses(byWord[w])
		if translation == "" {
			continue
		}
		if _, err := s.cache.Upsert(ctx, domain.EntryDraft{
			Word:           w,
			Translation:    translation,
			PartOfSpeech:   partOfSpeech,
			Gender:         gender,
			SourceLanguage: sourceLanguage,
			TargetLanguage: targetLanguage,
		}); err != nil {
			return fmt.Errorf("upsert %q: %w", w, err)
		}
	}
	return nil
}

func (s *Service) count(result string) {
	if s.words != nil {
		s.words.WithLabelValues(result).Inc()
	}
}
