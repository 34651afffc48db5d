// Package openai implements the AI translation gateway against any
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lang2lang/vocabd/internal/domain"
	"github.com/lang2lang/vocabd/internal/metrics"
)

const systemPrompt = "You are a precise bilingual dictionary. " +
	"You answer with strict JSON only, no prose and no markdown."

// Translator is a translation provider using the OpenAI-compatible API.
type Translator struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the translation provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewTranslator creates an OpenAI-compatible translation provider.
func NewTranslator(cfg *Config) *Translator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Translator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// TranslateBatch translates a batch of normalized words in one API call.
// The reply is not trusted for completeness: it may contain fewer, more,
// or differently-cased words than requested. Transport failures wrap
// domain.ErrGatewayUnavailable; unparseable or invalid payloads wrap
// domain.ErrGatewayInvalidResponse.
func (t *Translator) TranslateBatch(
	ctx context.Context, words []string, sourceLanguage, targetLanguage string,
) ([]domain.RawTranslation, error) {
	if len(words) == 0 {
		return nil, nil
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(words, sourceLanguage, targetLanguage)},
		},
	}

	start := time.Now()

	resp, err := t.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(t.provider, t.model, "api_error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(t.provider, t.model, "empty_response").Inc()
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrGatewayInvalidResponse)
	}

	raws, err := parseTranslations(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "error").Inc()
		metrics.TranslationErrorsTotal.WithLabelValues(t.provider, t.model, "parse_error").Inc()
		t.logger.Warn("Unparseable translation response",
			zap.String("model", t.model), zap.Error(err))
		return nil, err
	}

	metrics.TranslationRequestsTotal.WithLabelValues(t.provider, t.model, "success").Inc()
	metrics.TranslationRequestDuration.WithLabelValues(t.provider, t.model).Observe(duration.Seconds())

	return raws, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (t *Translator) HealthCheck(ctx context.Context) error {
	if _, err := t.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func buildPrompt(words []string, sourceLanguage, targetLanguage string) string {
	list, _ := json.Marshal(words)
	var b strings.Builder
	b.WriteString("Translate each of the following ")
	b.WriteString(sourceLanguage)
	b.WriteString(" words into ")
	b.WriteString(targetLanguage)
	b.WriteString(".\n")
	b.WriteString("Reply with a JSON array, one object per word, shaped exactly as:\n")
	b.WriteString(`[{"word": "...", "translation": "...", "partOfSpeech": "..." or null, "gender": "..." or null}]` + "\n")
	b.WriteString("Rules: echo the input word in \"word\"; if a word has no translation, ")
	b.WriteString(`set "translation" to "` + domain.UndefinedTranslation + `"; `)
	b.WriteString("use null for partOfSpeech or gender when not applicable.\n")
	b.WriteString("Words: ")
	b.Write(list)
	return b.String()
}

// rawRecord mirrors one array element of the gateway reply. Pointers
// distinguish missing required fields from empty ones.
type rawRecord struct {
	Word         *string `json:"word"`
	Translation  *string `json:"translation"`
	PartOfSpeech *string `json:"partOfSpeech"`
	Gender       *string `json:"gender"`
}

// parseTranslations validates the completion content into RawTranslation
// records. Models wrap JSON in markdown fences often enough that the fences
// are stripped first (the API contract says no markdown, but trust nothing).
func parseTranslations(content string) ([]domain.RawTranslation, error) {
	cleaned := stripCodeFences(content)

	var records []rawRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, fmt.Errorf("parse translation array: %v: %w", err, domain.ErrGatewayInvalidResponse)
	}

	out := make([]domain.RawTranslation, 0, len(records))
	for i, rec := range records {
		if rec.Word == nil || rec.Translation == nil {
			return nil, fmt.Errorf(
				"translation record %d missing word or translation: %w",
				i, domain.ErrGatewayInvalidResponse,
			)
		}
		raw := domain.RawTranslation{
			Word:        *rec.Word,
			Translation: *rec.Translation,
		}
		if rec.PartOfSpeech != nil {
			raw.PartOfSpeech = *rec.PartOfSpeech
		}
		if rec.Gender != nil {
			raw.Gender = *rec.Gender
		}
		out = append(out, raw)
	}
	return out, nil
}

// stripCodeFences removes a surrounding ```json ... ``` (or plain ```) block.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrGatewayUnavailable so the
// orchestrator can degrade instead of failing the whole lookup.
func parseAPIError(err error) error {
	wrap := domain.ErrGatewayUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("translation request failed: %w", wrap)
}
