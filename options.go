package vocabd

import (
	"context"

	"go.uber.org/zap"
)

// Translator is the public translation gateway contract. Implementations
// turn a batch of normalized words into raw per-sense records.
type Translator interface {
	TranslateBatch(ctx context.Context, words []string, sourceLanguage, targetLanguage string) ([]Translation, error)
}

// Translation is a single sense returned by a Translator.
type Translation struct {
	Word         string
	Translation  string
	PartOfSpeech string
	Gender       string
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	keyPrefix string

	openAIKey     string
	openAIBaseURL string
	openAIModel   string
	translator    Translator

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis (or Valkey) instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithAddrs sets the full database address list.
func WithAddrs(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithCredentials sets the database username and password.
func WithCredentials(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects a Redis logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithKeyPrefix sets the cache key prefix. Default: "vocab:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithOpenAITranslator configures the built-in OpenAI-compatible translation
// gateway. baseURL may be empty for the default endpoint; model may be empty
// for the default model.
func WithOpenAITranslator(apiKey, baseURL, model string) Option {
	return func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIBaseURL = baseURL
		c.openAIModel = model
	}
}

// WithTranslator sets a custom translation gateway. Takes precedence over
// WithOpenAITranslator.
func WithTranslator(t Translator) Option {
	return func(c *clientConfig) {
		c.translator = t
	}
}

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
