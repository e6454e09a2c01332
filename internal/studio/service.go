package studio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/cardspark/cardstudio-backend/internal/clients/catalog"
	"github.com/cardspark/cardstudio-backend/internal/content"
	"github.com/cardspark/cardstudio-backend/internal/genai"
	"github.com/cardspark/cardstudio-backend/internal/genai/template"
	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/prompt"
	"github.com/cardspark/cardstudio-backend/internal/rag"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

const maxReferencesPerCard = 3

// Service runs the full content generation pipeline: fetch cards, retrieve
// evidence, assemble prompts, invoke a generation engine, map the reply and
// save the resulting bundle as a draft.
type Service struct {
	catalog   *catalog.Client
	retriever *rag.Retriever
	assembler *prompt.Assembler
	mapper    *Mapper
	manager   *content.Manager

	// model is nil when no credential is configured; the policy in engineFor
	// then selects the template engine.
	model genai.Engine
	opts  genai.Options

	log    *logger.Logger
	tracer trace.Tracer
}

func NewService(
	catalogClient *catalog.Client,
	retriever *rag.Retriever,
	assembler *prompt.Assembler,
	mapper *Mapper,
	manager *content.Manager,
	model genai.Engine,
	opts genai.Options,
	baseLog *logger.Logger,
) *Service {
	return &Service{
		catalog:   catalogClient,
		retriever: retriever,
		assembler: assembler,
		mapper:    mapper,
		manager:   manager,
		model:     model,
		opts:      opts,
		log:       baseLog.With("service", "StudioService"),
		tracer:    otel.Tracer("studio"),
	}
}

// Generate runs one request through the pipeline. Transport failures from the
// model propagate to the caller (who may retry); a missing credential or a
// malformed model reply never surface as errors.
func (s *Service) Generate(ctx context.Context, req types.ContentRequest) (*types.GeneratedContent, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "studio.generate", trace.WithAttributes(
		attribute.Int("platforms", len(req.Platforms)),
		attribute.Int("cards", len(req.SelectedCardIDs)),
	))
	defer span.End()

	cards, err := s.catalog.CardsByIDs(ctx, req.SelectedCardIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch selected cards: %w", err)
	}

	retrieveCtx, retrieveSpan := s.tracer.Start(ctx, "studio.retrieve")
	results, keywords, err := s.retriever.Retrieve(retrieveCtx, cards, req.PromptText)
	retrieveSpan.End()
	if err != nil {
		return nil, err
	}

	systemPrompt := s.assembler.BuildSystemPrompt(req, results)
	userPrompt := s.assembler.BuildUserPrompt(req, results)

	fallback := template.New(req.Platforms, cardNames(results), req.Format)
	engine := s.engineFor(fallback)

	invokeCtx, invokeSpan := s.tracer.Start(ctx, "studio.invoke")
	raw, err := engine.GenerateText(invokeCtx, []genai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, s.opts)
	invokeSpan.End()
	if err != nil {
		// Transport failures are the caller's decision to retry; nothing is
		// silently swallowed here.
		return nil, err
	}

	contentMap := s.mapper.MapResponse(raw, req.Platforms, fallback)

	c := &types.GeneratedContent{
		ID:                newContentID(),
		Platforms:         datatypes.NewJSONSlice(req.Platforms),
		ContentByPlatform: datatypes.NewJSONType(contentMap),
		References:        datatypes.NewJSONType(buildReferences(results)),
		Tone:              req.Tone,
		PromptText:        req.PromptText,
		SelectedCardIDs:   datatypes.NewJSONSlice(req.SelectedCardIDs),
		Format:            req.Format,
		CardData:          datatypes.NewJSONType(cards),
		Status:            types.StatusDraft,
		CreatedAt:         time.Now(),
	}

	if err := s.manager.SaveDraft(ctx, c); err != nil {
		return nil, fmt.Errorf("save generated draft: %w", err)
	}

	s.log.Info("Content generated",
		"content_id", c.ID,
		"platforms", req.Platforms,
		"cards", len(cards),
		"keywords", len(keywords),
	)
	return c, nil
}

// engineFor is the single policy point choosing model-backed vs
// template-backed generation.
func (s *Service) engineFor(fallback *template.Engine) genai.Engine {
	if s.model == nil {
		s.log.Info("No generation credential configured, using template-backed content")
		return fallback
	}
	return s.model
}

func validateRequest(req types.ContentRequest) error {
	if len(req.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform required", pkgerrors.ErrInvalidArgument)
	}
	if len(req.SelectedCardIDs) == 0 {
		return fmt.Errorf("%w: at least one card required", pkgerrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.PromptText) == "" {
		return fmt.Errorf("%w: prompt text required", pkgerrors.ErrInvalidArgument)
	}
	return nil
}

func cardNames(results []types.RAGResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		if r.CardName != "" {
			names = append(names, r.CardName)
		}
	}
	return names
}

func buildReferences(results []types.RAGResult) []types.Reference {
	var refs []types.Reference
	for _, r := range results {
		for i, hit := range r.Hits {
			if i >= maxReferencesPerCard {
				break
			}
			refs = append(refs, types.Reference{
				Text:     hit.Value,
				Source:   hit.Field,
				CardName: r.CardName,
			})
		}
	}
	return refs
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newContentID derives a unique id from the current time; the guard keeps ids
// unique when two generations land on the same millisecond.
func newContentID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return fmt.Sprintf("content-%d", now)
}
