package models

// Categories lists the moderation API's policy categories in canonical
// order. Classifier responses are normalized against this order so the
// pipeline's output is deterministic regardless of map iteration.
var Categories = []string{
	"sexual",
	"hate_and_discrimination",
	"violence_and_threats",
	"dangerous_and_criminal_content",
	"selfharm",
	"health",
	"financial",
	"law",
	"pii",
}

var categoryLabels = map[string]string{
	"sexual":                         "Sexual content",
	"hate_and_discrimination":        "Hate or discrimination",
	"violence_and_threats":           "Violence or threats",
	"dangerous_and_criminal_content": "Dangerous or criminal content",
	"selfharm":                       "Self-harm",
	"health":                         "Unqualified medical advice",
	"financial":                      "Unqualified financial advice",
	"law":                            "Unqualified legal advice",
	"pii":                            "Personal data disclosure",

	// OpenAI moderation endpoint tokens.
	"hate":                   "Hate",
	"hate/threatening":       "Hateful threats",
	"harassment":             "Harassment",
	"harassment/threatening": "Threatening harassment",
	"self-harm":              "Self-harm",
	"self-harm/intent":       "Self-harm intent",
	"self-harm/instructions": "Self-harm instructions",
	"sexual/minors":          "Sexual content involving minors",
	"violence":               "Violence",
	"violence/graphic":       "Graphic violence",
}

// CategoryLabel returns the display label for a category token, falling
// back to the raw token for categories the taxonomy does not know.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}
