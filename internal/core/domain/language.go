package domain

// Language codes assigned to chunk records.
const (
	LanguageUrdu    = "ur"
	LanguageEnglish = "en"
	LanguageMixed   = "mixed"
)

// DetectLanguage classifies text by script: Arabic-block code points mark
// Urdu, ASCII letters mark English, both together mark mixed text. Documents
// with neither default to English.
func DetectLanguage(text string) string {
	var hasUrdu, hasLatin bool
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			hasUrdu = true
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			hasLatin = true
		}
		if hasUrdu && hasLatin {
			return LanguageMixed
		}
	}
	if hasUrdu {
		return LanguageUrdu
	}
	return LanguageEnglish
}
