// Package vocabd embeds the vocabulary lookup pipeline into a Go program:
// a Redis-backed vocabulary cache with an AI translation gateway behind it,
// no HTTP server required.
package vocabd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lang2lang/vocabd/internal/db"
	dbRedis "github.com/lang2lang/vocabd/internal/db/redis"
	"github.com/lang2lang/vocabd/internal/domain"
	vocabrepo "github.com/lang2lang/vocabd/internal/repository/vocabulary"
	openaiGw "github.com/lang2lang/vocabd/internal/transport/openai"
	lookupuc "github.com/lang2lang/vocabd/internal/usecase/lookup"
	vocabularyuc "github.com/lang2lang/vocabd/internal/usecase/vocabulary"
)

const defaultReadinessTimeout = 10 * time.Second

// ErrNotFound is returned when no vocabulary entry matches a query.
var ErrNotFound = domain.ErrEntryNotFound

// Entry is one stored vocabulary cache row.
type Entry struct {
	Word           string
	Translation    string
	PartOfSpeech   string
	Gender         string
	SourceLanguage string
	TargetLanguage string
}

// Result is the per-token output of a phrase lookup, in token order, with
// the token's original casing in Word. Translation is "[undefined]" for
// words that could not be resolved.
type Result struct {
	Word           string
	Translation    string
	PartOfSpeech   string
	Gender         string
	SourceLanguage string
	TargetLanguage string
}

// Client is the vocabd embedded entry point.
type Client struct {
	store     db.Store
	lookupSvc *lookupuc.Service
	vocabSvc  *vocabularyuc.Service
}

// New creates a vocabd Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: "vocab:",
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("vocabd: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("vocabd: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("vocabd: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	repo := vocabrepo.New(store, cfg.keyPrefix, cfg.logger)

	// Gateway: noop unless configured. Lookups still work against the
	// cache; unknown words stay undefined.
	var gw lookupuc.Gateway = noopGateway{}
	switch {
	case cfg.translator != nil:
		gw = &translatorAdapter{inner: cfg.translator}
	case cfg.openAIKey != "":
		model := cfg.openAIModel
		if model == "" {
			model = "gpt-4o-mini"
		}
		gw = openaiGw.NewTranslator(&openaiGw.Config{
			APIKey:   cfg.openAIKey,
			BaseURL:  cfg.openAIBaseURL,
			Model:    model,
			Provider: "openai",
			Logger:   cfg.logger,
		})
	}

	return &Client{
		store:     store,
		lookupSvc: lookupuc.New(repo, gw, nil, cfg.logger),
		vocabSvc:  vocabularyuc.New(repo),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// LookupPhrase resolves every word of nativeText, one result per token in
// input order. Words missing from the cache are translated in a single
// gateway batch and written back; gateway failures degrade the affected
// words to "[undefined]".
func (c *Client) LookupPhrase(ctx context.Context, nativeText, sourceLanguage, targetLanguage string) ([]Result, error) {
	results, err := c.lookupSvc.LookupPhrase(ctx, nativeText, sourceLanguage, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("lookup phrase: %w", err)
	}
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result(r)
	}
	return out, nil
}

// GetEntry returns the cached entry for a word in a target language,
// across any source language. Returns ErrNotFound when absent.
func (c *Client) GetEntry(ctx context.Context, word, targetLanguage string) (Entry, error) {
	e, err := c.vocabSvc.Get(ctx, word, targetLanguage)
	if err != nil {
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return entryFromDomain(e), nil
}

// ListByLanguage returns every cached entry for a target language.
func (c *Client) ListByLanguage(ctx context.Context, targetLanguage string) ([]Entry, error) {
	entries, err := c.vocabSvc.ListByLanguage(ctx, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = entryFromDomain(e)
	}
	return out, nil
}

func entryFromDomain(e domain.VocabularyEntry) Entry {
	return Entry{
		Word:           e.Word,
		Translation:    e.Translation,
		PartOfSpeech:   e.PartOfSpeech,
		Gender:         e.Gender,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
	}
}

// translatorAdapter wraps the public Translator to satisfy lookup.Gateway.
type translatorAdapter struct {
	inner Translator
}

func (a *translatorAdapter) TranslateBatch(
	ctx context.Context, words []string, sourceLanguage, targetLanguage string,
) ([]domain.RawTranslation, error) {
	raws, err := a.inner.TranslateBatch(ctx, words, sourceLanguage, targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	out := make([]domain.RawTranslation, len(raws))
	for i, r := range raws {
		out[i] = domain.RawTranslation(r)
	}
	return out, nil
}

// noopGateway fails every batch (used when no translator is configured).
type noopGateway struct{}

func (noopGateway) TranslateBatch(
	_ context.Context, _ []string, _, _ string,
) ([]domain.RawTranslation, error) {
	return nil, errors.New("vocabd: translator not configured (use WithOpenAITranslator or WithTranslator)")
}
