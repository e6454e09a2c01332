package rag

import (
	"testing"

	"github.com/cardspark/cardstudio-backend/internal/types"
)

func TestExtractFactsJoiningFee(t *testing.T) {
	vocab := DefaultVocabulary()
	keywords := vocab.ExtractKeywords("what's the joining fee?")

	facts := ExtractFacts(testCard(), vocab, keywords)
	if facts.JoiningFee != "₹500" {
		t.Fatalf("joining fee = %q, want ₹500", facts.JoiningFee)
	}
	if facts.AnnualFee != "" {
		t.Fatalf("annual fee should not be extracted for a joining-fee query, got %q", facts.AnnualFee)
	}
	if facts.Eligibility != nil {
		t.Fatalf("eligibility should not be extracted, got %+v", facts.Eligibility)
	}
}

func TestExtractFactsIsIntentGated(t *testing.T) {
	vocab := DefaultVocabulary()
	keywords := vocab.ExtractKeywords("tell me a story")

	facts := ExtractFacts(testCard(), vocab, keywords)
	if facts.JoiningFee != "" || facts.AnnualFee != "" || facts.RewardRate != "" {
		t.Fatalf("no intents matched, facts should be empty: %+v", facts)
	}
	if facts.KeyFeatures != nil || facts.Benefits != nil || facts.Eligibility != nil {
		t.Fatalf("no intents matched, facts should be empty: %+v", facts)
	}
}

func TestExtractFactsRewards(t *testing.T) {
	vocab := DefaultVocabulary()
	keywords := vocab.ExtractKeywords("how good are the reward points?")

	facts := ExtractFacts(testCard(), vocab, keywords)
	if facts.RewardRate != "4 points per ₹150" {
		t.Fatalf("reward rate = %q", facts.RewardRate)
	}
	if len(facts.KeyFeatures) != 2 {
		t.Fatalf("expected key features alongside rewards, got %v", facts.KeyFeatures)
	}
}

func TestExtractFactsEligibilityDefaults(t *testing.T) {
	vocab := DefaultVocabulary()
	keywords := vocab.ExtractKeywords("am I eligible on my income?")

	card := testCard()
	facts := ExtractFacts(card, vocab, keywords)
	if facts.Eligibility == nil {
		t.Fatalf("expected eligibility block")
	}
	if facts.Eligibility.Age != "21-60" {
		t.Fatalf("age = %q", facts.Eligibility.Age)
	}
	if facts.Eligibility.IncomeSalaried != "₹1,00,000/month" {
		t.Fatalf("income salaried = %q", facts.Eligibility.IncomeSalaried)
	}
	// Values absent from the record fall back to the literal default.
	if facts.Eligibility.IncomeSelfEmployed != "Not specified" {
		t.Fatalf("income self employed = %q, want Not specified", facts.Eligibility.IncomeSelfEmployed)
	}
	if facts.Eligibility.CreditScore != "Not specified" {
		t.Fatalf("credit score = %q, want Not specified", facts.Eligibility.CreditScore)
	}

	delete(card, "eligibility")
	facts = ExtractFacts(card, vocab, keywords)
	if facts.Eligibility == nil || facts.Eligibility.Age != "Not specified" {
		t.Fatalf("missing eligibility object should default all fields, got %+v", facts.Eligibility)
	}
}

func TestExtractFactsMissingFeeFieldDefaults(t *testing.T) {
	vocab := DefaultVocabulary()
	keywords := vocab.ExtractKeywords("what's the annual fee?")

	facts := ExtractFacts(types.CardRecord{"card_name": "Bare Card"}, vocab, keywords)
	if facts.AnnualFee != "Not specified" {
		t.Fatalf("annual fee = %q, want Not specified", facts.AnnualFee)
	}
}
