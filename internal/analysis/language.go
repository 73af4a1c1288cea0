package analysis

import "strings"

// Supported language labels for the outgoing analysis request.
const (
	LangEnglish = "English"
	LangGerman  = "German"
	LangFrench  = "French"
	LangSpanish = "Spanish"
	LangChinese = "Chinese"
)

type signature struct {
	language string
	markers  []string
}

// Priority-ordered: the first matching signature wins. Script detection runs
// before keyword matching because Han characters are unambiguous.
var signatures = []signature{
	{LangGerman, []string{"zutaten", "ß", " und ", "nährwert", "ä", "ö", "ü"}},
	{LangSpanish, []string{"ingredientes", "¿", "¡", "ñ", " con ", "información"}},
	{LangFrench, []string{"ingrédients", "valeurs nutritionnelles", "ç", " et ", "é", "è"}},
}

// DetectLanguage classifies the dominant language of label text. It is a
// cheap heuristic used only to annotate the analysis request; it always
// returns a label and defaults to English.
func DetectLanguage(text string) string {
	if containsHan(text) {
		return LangChinese
	}

	lower := strings.ToLower(text)
	for _, sig := range signatures {
		for _, marker := range sig.markers {
			if strings.Contains(lower, marker) {
				return sig.language
			}
		}
	}
	return LangEnglish
}

func containsHan(text string) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
