package videos

import "strings"

const defaultLanguageCode = "en"

var languageCodes = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"hindi":      "hi",
	"arabic":     "ar",
	"dutch":      "nl",
	"swedish":    "sv",
	"norwegian":  "no",
	"danish":     "da",
	"finnish":    "fi",
	"polish":     "pl",
	"czech":      "cs",
	"hungarian":  "hu",
	"turkish":    "tr",
	"greek":      "el",
	"hebrew":     "he",
	"thai":       "th",
	"vietnamese": "vi",
	"indonesian": "id",
	"malay":      "ms",
	"filipino":   "tl",
	"bengali":    "bn",
	"urdu":       "ur",
	"tamil":      "ta",
	"telugu":     "te",
	"gujarati":   "gu",
	"kannada":    "kn",
	"malayalam":  "ml",
	"marathi":    "mr",
	"punjabi":    "pa",
}

// LanguageCode maps a human language name to its relevance-language code.
// Unknown names fall back to English.
func LanguageCode(language string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(language))]; ok {
		return code
	}
	return defaultLanguageCode
}
