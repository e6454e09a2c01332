package rag

import (
	"strings"

	"github.com/cardspark/cardstudio-backend/internal/types"
)

const notSpecified = "Not specified"

// ExtractFacts pulls the intent-scoped typed evidence from one card record.
// Only intents present in the keyword set contribute, so the grounding context
// handed to the model stays scoped to what was actually asked.
func ExtractFacts(card types.CardRecord, vocab Vocabulary, keywords []string) types.ExtractedFacts {
	intents := vocab.MatchedIntents(keywords)

	var facts types.ExtractedFacts
	if intents["joining_fee"] {
		facts.JoiningFee = orNotSpecified(card.StringField("joining_fee"))
	}
	if intents["annual_fee"] {
		facts.AnnualFee = orNotSpecified(card.StringField("annual_fee"))
	}
	if intents["rewards"] {
		facts.RewardRate = orNotSpecified(card.StringField("reward_rate", "rewards"))
		facts.KeyFeatures = card.StringsField("key_features")
	}
	if intents["benefits"] {
		facts.Benefits = card.StringsField("benefits")
		if facts.KeyFeatures == nil {
			facts.KeyFeatures = card.StringsField("key_features")
		}
	}
	if intents["eligibility"] {
		facts.Eligibility = extractEligibility(card)
	}
	return facts
}

func extractEligibility(card types.CardRecord) *types.Eligibility {
	el := &types.Eligibility{
		Age:                notSpecified,
		IncomeSalaried:     notSpecified,
		IncomeSelfEmployed: notSpecified,
		CreditScore:        notSpecified,
	}

	raw, ok := card["eligibility"].(map[string]any)
	if !ok {
		return el
	}
	if v := strings.TrimSpace(types.Stringify(raw["age"])); v != "" {
		el.Age = v
	}
	if v := strings.TrimSpace(types.Stringify(raw["income_salaried"])); v != "" {
		el.IncomeSalaried = v
	}
	if v := strings.TrimSpace(types.Stringify(raw["income_self_employed"])); v != "" {
		el.IncomeSelfEmployed = v
	}
	if v := strings.TrimSpace(types.Stringify(raw["credit_score"])); v != "" {
		el.CreditScore = v
	}
	return el
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	return v
}
