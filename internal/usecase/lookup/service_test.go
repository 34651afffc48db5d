package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/lang2lang/vocabd/internal/domain"
)

func TestLookupPhrase_PreservesOrderAndCasing(t *testing.T) {
	svc, cache, _ := newTestService(t)
	cache.entries[cacheKey("donde", "en", "es")] = domain.VocabularyEntry{Word: "donde", Translation: "where"}
	cache.entries[cacheKey("esta", "en", "es")] = domain.VocabularyEntry{Word: "esta", Translation: "is"}

	results, err := svc.LookupPhrase(context.Background(), "¿Dónde está?", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Tokens keep their original form; resolution used the normalized word.
	if results[0].Word != "¿Dónde" || results[0].Translation != "where" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Word != "está?" || results[1].Translation != "is" {
		t.Errorf("unexpected second result: %+v", results[1])
	}
}

func TestLookupPhrase_Empty(t *testing.T) {
	svc, _, gw := newTestService(t)

	results, err := svc.LookupPhrase(context.Background(), "   ", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times for empty phrase", gw.calls)
	}
}

func TestLookupPhrase_PunctuationOnlyToken(t *testing.T) {
	svc, cache, gw := newTestService(t)
	cache.entries[cacheKey("hola", "en", "es")] = domain.VocabularyEntry{Word: "hola", Translation: "hello"}

	// "!!" normalizes to nothing: one result per token regardless, with the
	// sentinel for the empty one, and no cache or gateway traffic for it.
	results, err := svc.LookupPhrase(context.Background(), "hola !!", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Word != "!!" || results[1].Translation != domain.UndefinedTranslation {
		t.Errorf("unexpected result for punctuation token: %+v", results[1])
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times", gw.calls)
	}
	if cache.findCalls != 1 {
		t.Errorf("find called %d times, expected 1", cache.findCalls)
	}
}

func TestLookupPhrase_DuplicateWordResolvedOnce(t *testing.T) {
	svc, cache, gw := newTestService(t)
	gw.senses["hola"] = []domain.RawTranslation{
		{Word: "hola", Translation: "hello", PartOfSpeech: "interjection"},
	}

	results, err := svc.LookupPhrase(context.Background(), "hola Hola", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if cache.upsertCalls != 1 {
		t.Errorf("upsert called %d times, expected 1", cache.upsertCalls)
	}
	if gw.calls != 1 || len(gw.lastWords) != 1 {
		t.Errorf("gateway calls = %d, words = %v; expected one call with one word", gw.calls, gw.lastWords)
	}
	if results[0].Translation != "hello" || results[1].Translation != "hello" {
		t.Errorf("both tokens must share the resolution: %+v", results)
	}
	if results[0].Word != "hola" || results[1].Word != "Hola" {
		t.Errorf("token casing lost: %+v", results)
	}
}

func TestLookupPhrase_CacheHitSkipsGateway(t *testing.T) {
	svc, cache, gw := newTestService(t)
	cache.entries[cacheKey("hola", "en", "es")] = domain.VocabularyEntry{Word: "hola", Translation: "hello"}

	results, err := svc.LookupPhrase(context.Background(), "hola", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times on full cache hit", gw.calls)
	}
	if cache.upsertCalls != 0 {
		t.Errorf("upsert called %d times on full cache hit", cache.upsertCalls)
	}
	if results[0].Translation != "hello" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestLookupPhrase_GatewayFailureDegrades(t *testing.T) {
	svc, cache, gw := newTestService(t)
	gw.translateFn = func(_ context.Context, _ []string, _, _ string) ([]domain.RawTranslation, error) {
		return nil, domain.ErrGatewayUnavailable
	}

	results, err := svc.LookupPhrase(context.Background(), "hola mundo", "en", "es")
	if err != nil {
		t.Fatalf("gateway failure must not fail the lookup: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Translation != domain.UndefinedTranslation {
			t.Errorf("expected %q, got %+v", domain.UndefinedTranslation, r)
		}
	}
	if cache.upsertCalls != 0 {
		t.Errorf("unresolved words must not be cached, got %d upserts", cache.upsertCalls)
	}
}

func TestLookupPhrase_GatewayOmittedWordStaysUndefined(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.senses["hola"] = []domain.RawTranslation{{Word: "hola", Translation: "hello"}}
	// "mundo" is requested but absent from the reply.

	results, err := svc.LookupPhrase(context.Background(), "hola mundo", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Translation != "hello" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Translation != domain.UndefinedTranslation {
		t.Errorf("omitted word must stay undefined: %+v", results[1])
	}
}

func TestLookupPhrase_AllSensesUndefinedNotCached(t *testing.T) {
	svc, cache, gw := newTestService(t)
	gw.senses["xyzzy"] = []domain.RawTranslation{
		{Word: "xyzzy", Translation: domain.UndefinedTranslation},
	}

	results, err := svc.LookupPhrase(context.Background(), "xyzzy", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Translation != domain.UndefinedTranslation {
		t.Errorf("unexpected result: %+v", results[0])
	}
	if cache.upsertCalls != 0 {
		t.Errorf("sentinel-only word must not be cached, got %d upserts", cache.upsertCalls)
	}
}

func TestLookupPhrase_GatewayEchoCasingAbsorbed(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.translateFn = func(_ context.Context, _ []string, _, _ string) ([]domain.RawTranslation, error) {
		// The reply echoes the word with different casing and an accent.
		return []domain.RawTranslation{{Word: "Dónde", Translation: "where"}}, nil
	}

	results, err := svc.LookupPhrase(context.Background(), "donde", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Translation != "where" {
		t.Errorf("echo drift must land on the requested word: %+v", results[0])
	}
}

func TestLookupPhrase_GatewayExtraWordPersisted(t *testing.T) {
	svc, cache, gw := newTestService(t)
	gw.translateFn = func(_ context.Context, _ []string, _, _ string) ([]domain.RawTranslation, error) {
		// The reply carries a word that was never requested.
		return []domain.RawTranslation{
			{Word: "hola", Translation: "hello"},
			{Word: "adiós", Translation: "goodbye"},
		}, nil
	}

	results, err := svc.LookupPhrase(context.Background(), "hola", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Translation != "hello" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if cache.upsertCalls != 2 {
		t.Errorf("upsert called %d times, expected 2", cache.upsertCalls)
	}
	extra, ok := cache.entries[cacheKey("adios", "en", "es")]
	if !ok {
		t.Fatal("extra gateway word was not persisted")
	}
	if extra.Translation != "goodbye" {
		t.Errorf("extra entry = %+v", extra)
	}
}

func TestLookupPhrase_MergesMultipleSenses(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.senses["banco"] = []domain.RawTranslation{
		{Word: "banco", Translation: "bank", PartOfSpeech: "noun", Gender: "masculine"},
		{Word: "banco", Translation: "bench", PartOfSpeech: "noun", Gender: "masculine"},
	}

	results, err := svc.LookupPhrase(context.Background(), "banco", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Translation != "bank, bench" {
		t.Errorf("translation = %q, want %q", results[0].Translation, "bank, bench")
	}
	if results[0].PartOfSpeech != "noun" || results[0].Gender != "masculine" {
		t.Errorf("duplicate senses must collapse: %+v", results[0])
	}
}

func TestLookupPhrase_FindErrorFails(t *testing.T) {
	svc, cache, _ := newTestService(t)
	cache.findFn = func(_ context.Context, _, _, _ string) (domain.VocabularyEntry, error) {
		return domain.VocabularyEntry{}, errors.New("connection refused")
	}

	_, err := svc.LookupPhrase(context.Background(), "hola", "en", "es")
	if err == nil {
		t.Fatal("expected error when the cache is unavailable")
	}
}

func TestLookupPhrase_UpsertErrorFails(t *testing.T) {
	svc, cache, gw := newTestService(t)
	gw.senses["hola"] = []domain.RawTranslation{{Word: "hola", Translation: "hello"}}
	cache.upsertFn = func(_ context.Context, _ domain.EntryDraft) (domain.VocabularyEntry, error) {
		return domain.VocabularyEntry{}, errors.New("connection refused")
	}

	_, err := svc.LookupPhrase(context.Background(), "hola", "en", "es")
	if err == nil {
		t.Fatal("expected error when the cache write fails")
	}
}

func TestLookupPhrase_SecondCallServedFromCache(t *testing.T) {
	svc, _, gw := newTestService(t)
	gw.senses["donde"] = []domain.RawTranslation{{Word: "donde", Translation: "where"}}
	gw.senses["esta"] = []domain.RawTranslation{{Word: "esta", Translation: "is"}}
	gw.senses["el"] = []domain.RawTranslation{{Word: "el", Translation: "the"}}
	gw.senses["banco"] = []domain.RawTranslation{{Word: "banco", Translation: "bank"}}

	ctx := context.Background()
	first, err := svc.LookupPhrase(ctx, "Donde esta el banco", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 4 || gw.calls != 1 {
		t.Fatalf("results = %d, gateway calls = %d", len(first), gw.calls)
	}

	second, err := svc.LookupPhrase(ctx, "Donde esta el banco", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("second lookup hit the gateway, calls = %d", gw.calls)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d diverged: %+v vs %+v", i, first[i], second[i])
		}
	}
}
