// Package domain holds the shared vocabulary types and the pure lookup
// pipeline logic (normalization, sense merging) used by all layers.
package domain

// UndefinedTranslation marks a word for which no translation could be
// determined. It is a normal result value, not an error: the translation
// gateway returns it to signal "explicitly no answer", and lookup results
// carry it for words that stayed unresolved.
const UndefinedTranslation = "[undefined]"

// VocabularyEntry is one persisted vocabulary cache row. At most one entry
// exists per (normalized word, source language, target language) triple.
type VocabularyEntry struct {
	ID             string
	Word           string // normalized form, part of the cache key
	Translation    string // merged senses, ", "-joined, sorted, deduplicated
	PartOfSpeech   string
	Gender         string
	SourceLanguage string
	TargetLanguage string
}

// EntryDraft is the input to an upsert. Word carries the caller's original
// casing; the store normalizes it before building the cache key.
type EntryDraft struct {
	Word           string
	Translation    string
	PartOfSpeech   string
	Gender         string
	SourceLanguage string
	TargetLanguage string
}

// RawTranslation is a single sense as echoed by the translation gateway.
// Word is not trusted to be normalized; PartOfSpeech and Gender are empty
// when the gateway returned null for them.
type RawTranslation struct {
	Word         string
	Translation  string
	PartOfSpeech string
	Gender       string
}

// LookupResult is the per-token output of a phrase lookup: one per input
// token, in input order, Word in the token's original casing.
type LookupResult struct {
	Word           string
	Translation    string
	PartOfSpeech   string
	Gender         string
	SourceLanguage string
	TargetLanguage string
}
