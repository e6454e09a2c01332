package rag

import "strings"

// Intent is one recognized domain intent: trigger phrases looked up in the
// request text, and the search keywords the intent contributes.
type Intent struct {
	Name     string
	Triggers []string
	Keywords []string
}

// Vocabulary is the fixed keyword table. It is immutable configuration built
// once at startup and passed into the extractor, never ambient state.
type Vocabulary struct {
	Intents []Intent
	Always  []string
}

// DefaultVocabulary covers the card-domain intents the studio recognizes.
// Matching is plain case-insensitive substring lookup so extraction stays
// deterministic and reproducible.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Intents: []Intent{
			{
				Name:     "joining_fee",
				Triggers: []string{"joining fee", "joining"},
				Keywords: []string{"joining_fee", "joining fee", "fees"},
			},
			{
				Name:     "annual_fee",
				Triggers: []string{"annual fee", "annual", "renewal fee"},
				Keywords: []string{"annual_fee", "annual fee", "fees"},
			},
			{
				Name:     "rewards",
				Triggers: []string{"reward", "points", "cashback", "cash back"},
				Keywords: []string{"reward", "rewards", "reward_rate", "points", "cashback"},
			},
			{
				Name:     "benefits",
				Triggers: []string{"benefit", "feature", "perk", "lounge"},
				Keywords: []string{"benefit", "benefits", "features", "key_features"},
			},
			{
				Name:     "eligibility",
				Triggers: []string{"eligibility", "eligible", "income", "salary", "age", "credit score", "cibil"},
				Keywords: []string{"eligibility", "income", "age", "credit_score"},
			},
			{
				Name:     "network",
				Triggers: []string{"network", "visa", "mastercard", "rupay", "amex", "diners"},
				Keywords: []string{"network", "card_network"},
			},
			{
				Name:     "bank",
				Triggers: []string{"bank", "hdfc", "icici", "sbi", "axis", "kotak", "american express"},
				Keywords: []string{"bank", "bank_name"},
			},
		},
		Always: []string{"name", "card", "credit"},
	}
}

// ExtractKeywords maps free request text to the ordered keyword set for the
// matched intents plus the always-on generic tokens. Duplicates are removed
// keeping first appearance. Pure function of (text, vocabulary).
func (v Vocabulary) ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	seen := make(map[string]bool)
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	for _, intent := range v.Intents {
		for _, trigger := range intent.Triggers {
			if strings.Contains(lower, trigger) {
				for _, kw := range intent.Keywords {
					add(kw)
				}
				break
			}
		}
	}
	for _, kw := range v.Always {
		add(kw)
	}
	return out
}

// MatchedIntents returns the names of intents whose canonical keyword (the
// intent name itself) is present in the extracted keyword set; the evidence
// extractor keys off this. The shared "fees" synonym deliberately does not
// cross-activate the two fee intents.
func (v Vocabulary) MatchedIntents(keywords []string) map[string]bool {
	kwset := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kwset[kw] = true
	}
	matched := make(map[string]bool)
	for _, intent := range v.Intents {
		if kwset[intent.Name] {
			matched[intent.Name] = true
		}
	}
	return matched
}
