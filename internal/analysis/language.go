package analysis

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Language checking for the content filter. Posts that carry an explicit
// language tag are compared directly; everything else goes through a cheap
// script-density gate followed by a statistical classifier verdict.

const (
	minDetectableLength = 10
	minASCIIDensity     = 70.0
	maxLangCacheEntries = 5000
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector

	langCacheMu sync.Mutex
	langCache   = make(map[string]string)
)

var isoByLanguage = map[lingua.Language]string{
	lingua.English: "en",
	lingua.Spanish: "es",
	lingua.French:  "fr",
	lingua.German:  "de",
}

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Spanish, lingua.French, lingua.German).
			Build()
	})
	return detector
}

func isASCIITextRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == ',' || r == '!' || r == '?' || r == '\'' || r == '"':
		return true
	}
	return false
}

// asciiDensity returns the percentage of non-whitespace runes that are ASCII
// letters, digits, or basic punctuation.
func asciiDensity(text string) float64 {
	matched, total := 0, 0
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		total++
		if isASCIITextRune(r) {
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total) * 100
}

func cleanForDetection(text string) string {
	cleaned := hashtagRe.ReplaceAllString(mentionRe.ReplaceAllString(urlRe.ReplaceAllString(text, ""), ""), "")
	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r > 127:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// detectLanguage returns the ISO-639-1 code when the classifier is confident
// and the language is one we support, otherwise "".
func detectLanguage(cleaned string) string {
	langCacheMu.Lock()
	if iso, ok := langCache[cleaned]; ok {
		langCacheMu.Unlock()
		return iso
	}
	langCacheMu.Unlock()

	iso := ""
	if lang, ok := languageDetector().DetectLanguageOf(cleaned); ok {
		iso = isoByLanguage[lang]
	}

	langCacheMu.Lock()
	if len(langCache) >= maxLangCacheEntries {
		langCache = make(map[string]string)
	}
	langCache[cleaned] = iso
	langCacheMu.Unlock()

	return iso
}

// isValidLanguageContent reports whether untagged text should be treated as
// the target language.
func isValidLanguageContent(text, language string) bool {
	if language == "" || language == "all" {
		return true
	}

	cleaned := cleanForDetection(text)
	if len(cleaned) < minDetectableLength {
		return false
	}
	if asciiDensity(cleaned) < minASCIIDensity {
		return false
	}
	return detectLanguage(cleaned) == language
}
