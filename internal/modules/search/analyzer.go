package search

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultLanguage is the analyzer used when no language is given or the given
// one is not supported.
const DefaultLanguage = "simple"

// stopwords per analyzer language. The names mirror common text-search
// configuration names so ingested corpus languages map onto them directly.
var stopwords = map[string]map[string]struct{}{
	"simple": {},
	"english": wordSet(
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "if",
		"in", "into", "is", "it", "no", "not", "of", "on", "or", "such",
		"that", "the", "their", "then", "there", "these", "they", "this",
		"to", "was", "will", "with"),
	"german": wordSet(
		"aber", "als", "am", "an", "auch", "auf", "aus", "bei", "bin", "das",
		"dass", "dem", "den", "der", "des", "die", "ein", "eine", "einer",
		"es", "für", "hat", "ich", "im", "in", "ist", "mit", "nicht", "noch",
		"sich", "sie", "sind", "und", "von", "war", "wie", "zu"),
	"french": wordSet(
		"au", "aux", "avec", "ce", "ces", "dans", "de", "des", "du", "elle",
		"en", "et", "eux", "il", "je", "la", "le", "les", "leur", "lui",
		"mais", "ne", "nous", "on", "ou", "par", "pas", "pour", "qu", "que",
		"qui", "sa", "se", "ses", "son", "sur", "un", "une", "vous"),
	"spanish": wordSet(
		"al", "como", "con", "de", "del", "el", "ella", "en", "es", "esta",
		"la", "las", "lo", "los", "más", "no", "o", "para", "pero", "por",
		"que", "se", "sin", "su", "sus", "un", "una", "y"),
}

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Languages returns the supported analyzer languages, sorted.
func Languages() []string {
	langs := make([]string, 0, len(stopwords))
	for l := range stopwords {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Analyze tokenizes a query for the given language: lowercasing, splitting on
// non-alphanumeric runes and pruning the language's stopwords. An unsupported
// language is treated as no language at all.
func Analyze(query, language string) []string {
	stop, ok := stopwords[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		stop = stopwords[DefaultLanguage]
	}

	raw := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, skip := stop[t]; skip {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
