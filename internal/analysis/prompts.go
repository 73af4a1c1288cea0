package analysis

import "fmt"

// labelAnalysisPrompt is the fixed instruction block sent with every scan.
// The schema here is the contract the decoder validates against.
const labelAnalysisPrompt = `You are a food label analysis engine.

Your task:
- Analyze the OCR text of a food product label.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- NO explanations, NO markdown, NO extra text.

If the text is not a food label, return this exact JSON:
{"error": "short reason why analysis is impossible"}

Required JSON schema:
{
  "product_name": "string",
  "brand": "string",
  "category": "Beverages | Dairy | Snacks | Bakery | Meat & Seafood | Produce | Frozen | Canned Goods | Condiments | Other",
  "ingredients": [
    {
      "name": "string",
      "explanation": "what this ingredient is and why it is used",
      "concern_level": "none | low | medium | high",
      "concern_reason": "string, only when concern_level is medium or high"
    }
  ],
  "allergens": ["string"],
  "concerning_additives": [
    {
      "name": "string",
      "explanation": "string",
      "concern_level": "low | medium | high"
    }
  ],
  "processing_level": "minimally | moderately | highly",
  "natural_percentage": number between 0 and 100,
  "nutrition": {
    "calories": number, "protein": number, "carbs": number,
    "fat": number, "fiber": number, "sugar": number, "sodium": number
  },
  "summary": "two or three sentence overview of the product's healthiness",
  "healthier_alternatives": ["string"],
  "detected_language": "string"
}

The "ingredients" array is required; every other field may be omitted when
the label gives no evidence for it. Values for "nutrition" are per 100g.

Label language: %s

OCR TEXT:
%s`

// BuildPrompt assembles the analysis request for one scan.
func BuildPrompt(rawText, language string) string {
	return fmt.Sprintf(labelAnalysisPrompt, language, rawText)
}
