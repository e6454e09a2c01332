package prompt

import (
	"strings"
	"testing"

	"github.com/cardspark/cardstudio-backend/internal/types"
)

func mustGuide(t *testing.T) StyleGuide {
	t.Helper()
	g, err := LoadStyleGuide()
	if err != nil {
		t.Fatalf("load style guide: %v", err)
	}
	return g
}

func feeResult() types.RAGResult {
	return types.RAGResult{
		CardName: "Regalia Gold",
		BankName: "HDFC Bank",
		Hits: []types.SearchHit{
			{Field: "joining_fee", Value: "₹500", Relevance: 13},
		},
		ExtractedFacts: types.ExtractedFacts{JoiningFee: "₹500"},
	}
}

func TestLoadStyleGuideHasAllPlatforms(t *testing.T) {
	g := mustGuide(t)
	for _, key := range []string{"linkedin", "twitter", "instagram", "youtube"} {
		style, ok := g.Platforms[key]
		if !ok {
			t.Fatalf("style guide missing platform %q", key)
		}
		if style.DisplayName == "" || style.MaxLength <= 0 {
			t.Fatalf("platform %q is incomplete: %+v", key, style)
		}
	}
	if g.DisplayName("twitter") != "X (Twitter)" {
		t.Fatalf("twitter display name = %q", g.DisplayName("twitter"))
	}
	if g.DisplayName("mastodon") != "mastodon" {
		t.Fatalf("unknown keys must pass through, got %q", g.DisplayName("mastodon"))
	}
}

func TestSystemPromptGroundsEvidence(t *testing.T) {
	a := NewAssembler(mustGuide(t))
	req := types.ContentRequest{
		Platforms:       []string{"linkedin"},
		SelectedCardIDs: []string{"c1"},
		PromptText:      "what's the joining fee?",
	}

	sys := a.BuildSystemPrompt(req, []types.RAGResult{feeResult()})
	for _, want := range []string{"financial content creator", "Regalia Gold", "HDFC Bank", "500", "linkedin"} {
		if !strings.Contains(sys, want) {
			t.Fatalf("system prompt missing %q:\n%s", want, sys)
		}
	}
	if !strings.Contains(sys, "flat JSON object") {
		t.Fatalf("system prompt must demand a flat JSON reply:\n%s", sys)
	}
}

func TestSystemPromptIncludesFormatGuidance(t *testing.T) {
	a := NewAssembler(mustGuide(t))
	req := types.ContentRequest{
		Platforms:  []string{"twitter"},
		PromptText: "promote the card",
		Format:     "thread",
	}

	sys := a.BuildSystemPrompt(req, nil)
	if !strings.Contains(sys, "Format (thread)") {
		t.Fatalf("expected thread format guidance:\n%s", sys)
	}

	// A format with no entry for the platform adds no guidance line.
	req.Format = "carousel"
	sys = a.BuildSystemPrompt(req, nil)
	if strings.Contains(sys, "Format (carousel)") {
		t.Fatalf("carousel is not a twitter format:\n%s", sys)
	}
}

func TestSystemPromptCombinesRequestedTone(t *testing.T) {
	a := NewAssembler(mustGuide(t))
	req := types.ContentRequest{
		Platforms:  []string{"linkedin"},
		PromptText: "promote",
		Tone:       "witty",
	}
	sys := a.BuildSystemPrompt(req, nil)
	if !strings.Contains(sys, "witty") {
		t.Fatalf("requested tone missing:\n%s", sys)
	}
}

func TestUserPromptRestatesRequestAndHits(t *testing.T) {
	a := NewAssembler(mustGuide(t))
	req := types.ContentRequest{
		Platforms:  []string{"linkedin", "twitter"},
		PromptText: "what's the joining fee?",
		Format:     "post",
	}

	user := a.BuildUserPrompt(req, []types.RAGResult{feeResult()})
	for _, want := range []string{
		"what's the joining fee?",
		"linkedin, twitter",
		"Format: post",
		"- joining_fee: ₹500",
		"Prioritize the retrieved card data",
	} {
		if !strings.Contains(user, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestPromptsAreDeterministic(t *testing.T) {
	a := NewAssembler(mustGuide(t))
	req := types.ContentRequest{Platforms: []string{"instagram"}, PromptText: "rewards?"}
	res := []types.RAGResult{feeResult()}

	if a.BuildSystemPrompt(req, res) != a.BuildSystemPrompt(req, res) {
		t.Fatalf("system prompt not deterministic")
	}
	if a.BuildUserPrompt(req, res) != a.BuildUserPrompt(req, res) {
		t.Fatalf("user prompt not deterministic")
	}
}
