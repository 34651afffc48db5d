package vocabulary

import "github.com/lang2lang/vocabd/internal/domain"

// Hash field names of a persisted vocabulary entry.
const (
	fieldWord           = "word"
	fieldTranslation    = "translation"
	fieldPartOfSpeech   = "part_of_speech"
	fieldGender         = "gender"
	fieldSourceLanguage = "source_language"
	fieldTargetLanguage = "target_language"
)

func entryFromFields(id string, f map[string]string) domain.VocabularyEntry {
	return domain.VocabularyEntry{
		ID:             id,
		Word:           f[fieldWord],
		Translation:    f[fieldTranslation],
		PartOfSpeech:   f[fieldPartOfSpeech],
		Gender:         f[fieldGender],
		SourceLanguage: f[fieldSourceLanguage],
		TargetLanguage: f[fieldTargetLanguage],
	}
}
