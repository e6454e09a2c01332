package prompt

import (
	"fmt"
	"strings"

	"github.com/cardspark/cardstudio-backend/internal/types"
)

// Assembler builds the system and user prompts for a generation request.
// Both builders are pure string functions over (request, retrieval results,
// style guide); they hold no state and touch no I/O.
type Assembler struct {
	guide StyleGuide
}

func NewAssembler(guide StyleGuide) *Assembler {
	return &Assembler{guide: guide}
}

// BuildSystemPrompt frames the model as a financial content creator, grounds
// it with the per-card evidence, and states the per-platform style rules plus
// the flat-JSON response contract keyed by internal platform names.
func (a *Assembler) BuildSystemPrompt(req types.ContentRequest, results []types.RAGResult) string {
	var b strings.Builder

	b.WriteString("You are an expert financial content creator specializing in credit cards.\n")
	b.WriteString("You write social media content that is accurate, engaging and grounded in the card data provided below.\n\n")

	b.WriteString("CARD DATA:\n")
	for i, res := range results {
		fmt.Fprintf(&b, "Card %d: %s", i+1, res.CardName)
		if res.BankName != "" {
			fmt.Fprintf(&b, " (%s)", res.BankName)
		}
		b.WriteString("\n")
		writeFacts(&b, res.ExtractedFacts)
		b.WriteString("\n")
	}

	b.WriteString("PLATFORM RULES:\n")
	for _, key := range req.Platforms {
		style, ok := a.guide.Platforms[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", key)
		fmt.Fprintf(&b, "- Tone: %s\n", combineTone(req.Tone, style.Tone))
		fmt.Fprintf(&b, "- Max length: %d characters\n", style.MaxLength)
		fmt.Fprintf(&b, "- Emoji: %s\n", style.EmojiDensity)
		fmt.Fprintf(&b, "- Hashtags: %s\n", style.HashtagCount)
		fmt.Fprintf(&b, "- Style: %s\n", style.ContentStyle)
		fmt.Fprintf(&b, "- Call to action: %s\n", style.CTAStyle)
		if req.Format != "" {
			if guidance, ok := style.Formats[req.Format]; ok {
				fmt.Fprintf(&b, "- Format (%s): %s\n", req.Format, guidance)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Use the exact values from CARD DATA whenever they are present; fall back to general knowledge only when a value is absent.\n")
	b.WriteString("2. Respect each platform's length limit and tone.\n")
	b.WriteString("3. Respond with a single flat JSON object mapping each platform key to its content text, one key per requested platform.\n")
	fmt.Fprintf(&b, "4. Use exactly these keys: %s.\n", strings.Join(req.Platforms, ", "))

	return b.String()
}

// BuildUserPrompt restates the request with the same evidence as per-card
// "field: value" bullets so the model sees the grounding twice.
func (a *Assembler) BuildUserPrompt(req types.ContentRequest, results []types.RAGResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Request: %s\n", req.PromptText)
	fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(req.Platforms, ", "))
	if req.Format != "" {
		fmt.Fprintf(&b, "Format: %s\n", req.Format)
	}
	b.WriteString("\nRetrieved card data:\n")
	for _, res := range results {
		fmt.Fprintf(&b, "%s", res.CardName)
		if res.BankName != "" {
			fmt.Fprintf(&b, " (%s)", res.BankName)
		}
		b.WriteString("\n")
		for _, hit := range res.Hits {
			fmt.Fprintf(&b, "- %s: %s\n", hit.Field, hit.Value)
		}
		b.WriteString("\n")
	}
	b.WriteString("Prioritize the retrieved card data above over general knowledge.\n")

	return b.String()
}

func writeFacts(b *strings.Builder, facts types.ExtractedFacts) {
	if facts.JoiningFee != "" {
		fmt.Fprintf(b, "- Joining fee: %s\n", facts.JoiningFee)
	}
	if facts.AnnualFee != "" {
		fmt.Fprintf(b, "- Annual fee: %s\n", facts.AnnualFee)
	}
	if facts.RewardRate != "" {
		fmt.Fprintf(b, "- Reward rate: %s\n", facts.RewardRate)
	}
	if len(facts.KeyFeatures) > 0 {
		fmt.Fprintf(b, "- Key features: %s\n", strings.Join(facts.KeyFeatures, "; "))
	}
	if len(facts.Benefits) > 0 {
		fmt.Fprintf(b, "- Benefits: %s\n", strings.Join(facts.Benefits, "; "))
	}
	if el := facts.Eligibility; el != nil {
		fmt.Fprintf(b, "- Eligibility: age %s, salaried income %s, self-employed income %s, credit score %s\n",
			el.Age, el.IncomeSalaried, el.IncomeSelfEmployed, el.CreditScore)
	}
}

func combineTone(requested, platform string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return platform
	}
	return fmt.Sprintf("%s, %s", requested, platform)
}
