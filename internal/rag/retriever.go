package rag

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

// Retriever runs keyword extraction plus per-card search and evidence
// extraction. Per-card work is independent, so cards are scored concurrently;
// results always come back in selection order.
type Retriever struct {
	vocab    Vocabulary
	searcher *Searcher
	log      *logger.Logger
}

func NewRetriever(vocab Vocabulary, baseLog *logger.Logger) *Retriever {
	return &Retriever{
		vocab:    vocab,
		searcher: NewSearcher(baseLog),
		log:      baseLog.With("component", "Retriever"),
	}
}

func (r *Retriever) Vocabulary() Vocabulary { return r.vocab }

// Retrieve produces one RAGResult per card, in input order.
func (r *Retriever) Retrieve(ctx context.Context, cards []types.CardRecord, requestText string) ([]types.RAGResult, []string, error) {
	keywords := r.vocab.ExtractKeywords(requestText)
	results := make([]types.RAGResult, len(cards))

	g, ctx := errgroup.WithContext(ctx)
	for i, card := range cards {
		i, card := i, card
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = types.RAGResult{
				CardName:       card.Name(),
				BankName:       card.Bank(),
				Hits:           r.searcher.Search(card, keywords),
				ExtractedFacts: ExtractFacts(card, r.vocab, keywords),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	r.log.Debug("Retrieval complete", "cards", len(cards), "keywords", len(keywords))
	return results, keywords, nil
}
