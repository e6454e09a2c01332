package rag

import (
	"sort"
	"strings"

	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

const maxHits = 10

// Searcher scores card record fields against an extracted keyword set.
type Searcher struct {
	log *logger.Logger
}

func NewSearcher(baseLog *logger.Logger) *Searcher {
	return &Searcher{log: baseLog.With("component", "Searcher")}
}

// Search walks every (keyword, field) pair one level deep and scores:
// field name containing the keyword +10, value containing it +5, field name
// containing the keyword's first three characters +3, value containing them
// +2. A hit is appended per matching keyword; duplicates for a field are then
// dropped keeping the first-seen hit, so a field's relevance is the score from
// the first keyword that matched it. That first-occurrence dedupe mirrors the
// long-observed behavior; a max-merge would arguably rank better but would
// change results.
func (s *Searcher) Search(card types.CardRecord, keywords []string) []types.SearchHit {
	fields := make([]string, 0, len(card))
	for f := range card {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var raw []types.SearchHit
	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)
		if kwLower == "" {
			continue
		}
		prefix := kwLower
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		for _, field := range fields {
			value := types.Stringify(card[field])
			fieldLower := strings.ToLower(field)
			valueLower := strings.ToLower(value)

			score := 0
			if strings.Contains(fieldLower, kwLower) {
				score += 10
			}
			if strings.Contains(valueLower, kwLower) {
				score += 5
			}
			if strings.Contains(fieldLower, prefix) {
				score += 3
			}
			if strings.Contains(valueLower, prefix) {
				score += 2
			}
			if score > 0 {
				raw = append(raw, types.SearchHit{Field: field, Value: value, Relevance: score})
			}
		}
	}

	seen := make(map[string]bool, len(raw))
	hits := raw[:0]
	for _, h := range raw {
		if seen[h.Field] {
			continue
		}
		seen[h.Field] = true
		hits = append(hits, h)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Relevance > hits[j].Relevance
	})
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}

	if len(hits) == 0 {
		s.log.Debug("No card fields matched the keyword set", "card", card.Name(), "keywords", keywords)
	}
	return hits
}
