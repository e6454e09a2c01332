package rag

import (
	"reflect"
	"testing"
)

func TestExtractKeywordsJoiningFee(t *testing.T) {
	vocab := DefaultVocabulary()
	got := vocab.ExtractKeywords("what's the joining fee?")

	for _, want := range []string{"joining_fee", "joining fee", "fees", "name", "card", "credit"} {
		if !containsString(got, want) {
			t.Fatalf("expected keyword %q in %v", want, got)
		}
	}
}

func TestExtractKeywordsIdempotent(t *testing.T) {
	vocab := DefaultVocabulary()
	text := "compare annual fee and rewards for travel benefits"

	first := vocab.ExtractKeywords(text)
	second := vocab.ExtractKeywords(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not idempotent: %v vs %v", first, second)
	}
}

func TestExtractKeywordsAlwaysIncludesGenericTokens(t *testing.T) {
	vocab := DefaultVocabulary()
	got := vocab.ExtractKeywords("tell me something")

	want := []string{"name", "card", "credit"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected only generic tokens %v, got %v", want, got)
	}
}

func TestExtractKeywordsDeduplicates(t *testing.T) {
	vocab := DefaultVocabulary()
	got := vocab.ExtractKeywords("joining fee joining fee annual fee")

	seen := map[string]int{}
	for _, kw := range got {
		seen[kw]++
		if seen[kw] > 1 {
			t.Fatalf("keyword %q appears more than once in %v", kw, got)
		}
	}
	// "fees" is shared between the two fee intents and must appear once,
	// at its first position.
	if seen["fees"] != 1 {
		t.Fatalf("expected shared synonym fees exactly once, got %v", got)
	}
}

func TestExtractKeywordsCaseInsensitive(t *testing.T) {
	vocab := DefaultVocabulary()
	upper := vocab.ExtractKeywords("WHAT IS THE ANNUAL FEE")
	lower := vocab.ExtractKeywords("what is the annual fee")
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case should not matter: %v vs %v", upper, lower)
	}
	if !containsString(upper, "annual_fee") {
		t.Fatalf("expected annual_fee in %v", upper)
	}
}

func TestMatchedIntentsDoesNotCrossActivateFeeIntents(t *testing.T) {
	vocab := DefaultVocabulary()
	keywords := vocab.ExtractKeywords("what's the joining fee?")

	intents := vocab.MatchedIntents(keywords)
	if !intents["joining_fee"] {
		t.Fatalf("expected joining_fee intent, got %v", intents)
	}
	if intents["annual_fee"] {
		t.Fatalf("annual_fee should not activate from a joining-fee request: %v", intents)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
