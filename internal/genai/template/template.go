package template

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cardspark/cardstudio-backend/internal/genai"
)

// Engine is the deterministic template-backed generator. It is built per
// request with the platforms and card names and ignores the prompts entirely:
// template output is intentionally not grounded in retrieval, it only
// guarantees the pipeline has usable content when no model is reachable.
type Engine struct {
	platforms []string
	cardNames []string
	format    string
}

func New(platforms []string, cardNames []string, format string) *Engine {
	return &Engine{platforms: platforms, cardNames: cardNames, format: format}
}

// GenerateText satisfies genai.Engine by returning the synthesized content as
// the same flat JSON shape a well-behaved model would produce.
func (e *Engine) GenerateText(ctx context.Context, messages []genai.Message, opts genai.Options) (string, error) {
	_ = ctx
	_ = messages
	_ = opts
	b, err := json.Marshal(e.Synthesize())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Synthesize produces one fixed-template text per requested platform, keyed by
// internal platform name. Total: never empty for a requested platform.
func (e *Engine) Synthesize() map[string]string {
	cards := strings.Join(e.cardNames, ", ")
	if cards == "" {
		cards = "the selected cards"
	}

	out := make(map[string]string, len(e.platforms))
	for _, p := range e.platforms {
		out[p] = e.textFor(p, cards)
	}
	return out
}

func (e *Engine) textFor(platform, cards string) string {
	switch platform {
	case "linkedin":
		return fmt.Sprintf("Choosing a credit card is a financial decision, not a lifestyle one.\n\n"+
			"This week we took a close look at %s. Fees, reward rates and eligibility criteria all tell a story about who each card is really built for.\n\n"+
			"Before you apply, compare the joining fee against the benefits you will actually use.\n\n"+
			"Which factor matters most to you when picking a card?\n\n"+
			"#CreditCards #PersonalFinance #SmartSpending", cards)
	case "twitter":
		return fmt.Sprintf("Picking between %s? Shortcut: ignore the sign-up shine, compare annual fee vs rewards you'll actually redeem. 💳 #CreditCards", cards)
	case "instagram":
		return fmt.Sprintf("💳 Card check!\n\n✨ Today's lineup: %s\n💰 Compare the fees\n🎁 Stack the rewards\n✈️ Count the perks\n\n"+
			"Save this for your next application 📌\n\n"+
			"#creditcard #rewards #cashback #financetips #moneymatters #creditscore #upgrade #cardlife", cards)
	case "youtube":
		return fmt.Sprintf("%s — Which One Actually Pays You Back?\n\n"+
			"In this video we break down %s: joining fees, annual fees, reward rates and the eligibility fine print nobody reads.\n\n"+
			"00:00 Intro\n01:00 Fees\n03:00 Rewards\n05:00 Who should apply\n\n"+
			"Subscribe for weekly card breakdowns and drop your questions in the comments!", cards, cards)
	default:
		return fmt.Sprintf("A quick look at %s: compare the fees, rewards and eligibility before you apply.", cards)
	}
}
