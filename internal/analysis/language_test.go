package analysis

import "testing"

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Ingredients: milk, sugar, cocoa butter", LangEnglish},
		{"Zutaten: Weizenmehl, Zucker, Salz", LangGerman},
		{"Enthält Milch und Soja", LangGerman},
		{"Ingrédients: farine de blé, sucre", LangFrench},
		{"Ingredientes: harina de trigo, azúcar", LangSpanish},
		{"配料：小麦粉，白砂糖，食用盐", LangChinese},
		{"", LangEnglish},
		{"12345 !!!", LangEnglish},
	}

	for _, tc := range cases {
		if got := DetectLanguage(tc.text); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}
