package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/repos"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

// Publisher pushes published content to the outside world. The default
// implementation only simulates that call with a bounded delay; a real
// social-platform integration slots in behind the same interface.
type Publisher interface {
	Publish(ctx context.Context, c *types.GeneratedContent) error
}

type simulatedPublisher struct {
	delay time.Duration
	log   *logger.Logger
}

func NewSimulatedPublisher(delay time.Duration, baseLog *logger.Logger) Publisher {
	if delay < 0 {
		delay = 0
	}
	if delay > 10*time.Second {
		delay = 10 * time.Second
	}
	return &simulatedPublisher{delay: delay, log: baseLog.With("service", "SimulatedPublisher")}
}

func (p *simulatedPublisher) Publish(ctx context.Context, c *types.GeneratedContent) error {
	p.log.Info("Simulating publish to social platforms", "content_id", c.ID, "platforms", []string(c.Platforms))
	select {
	case <-time.After(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Manager owns the draft → scheduled → published state machine and keeps the
// history index in sync with every transition.
type Manager struct {
	contents  repos.ContentRepo
	history   repos.HistoryRepo
	publisher Publisher
	log       *logger.Logger
}

func NewManager(contents repos.ContentRepo, history repos.HistoryRepo, publisher Publisher, baseLog *logger.Logger) *Manager {
	return &Manager{
		contents:  contents,
		history:   history,
		publisher: publisher,
		log:       baseLog.With("service", "ContentManager"),
	}
}

// SaveDraft creates the entry on first save and re-saves drafts in place.
// Saving over a scheduled or published entry is a backward transition and is
// rejected.
func (m *Manager) SaveDraft(ctx context.Context, c *types.GeneratedContent) error {
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: content id required", pkgerrors.ErrInvalidArgument)
	}

	existing, err := m.contents.GetByID(ctx, nil, c.ID)
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		c.Status = types.StatusDraft
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		if err := m.contents.Create(ctx, nil, c); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if !existing.Status.CanTransitionTo(types.StatusDraft) {
			return fmt.Errorf("%w: cannot save %s content as draft", pkgerrors.ErrLifecycleViolation, existing.Status)
		}
		c.Status = types.StatusDraft
		c.CreatedAt = existing.CreatedAt
		if err := m.contents.Update(ctx, nil, c); err != nil {
			return err
		}
	}

	return m.syncHistory(ctx, c)
}

// Schedule moves a draft (or an already scheduled entry, overwriting its
// timestamp) to scheduled with a required future time.
func (m *Manager) Schedule(ctx context.Context, id string, at time.Time) (*types.GeneratedContent, error) {
	if !at.After(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled time must be in the future", pkgerrors.ErrLifecycleViolation)
	}

	c, err := m.contents.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if !c.Status.CanTransitionTo(types.StatusScheduled) {
		return nil, fmt.Errorf("%w: cannot schedule %s content", pkgerrors.ErrLifecycleViolation, c.Status)
	}

	c.Status = types.StatusScheduled
	c.ScheduledFor = &at
	if err := m.contents.Update(ctx, nil, c); err != nil {
		return nil, err
	}
	if err := m.syncHistory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Publish finishes the lifecycle from draft or scheduled. There is no
// rollback from published.
func (m *Manager) Publish(ctx context.Context, id string) (*types.GeneratedContent, error) {
	c, err := m.contents.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if len(c.ContentByPlatform.Data()) == 0 {
		return nil, fmt.Errorf("%w: cannot publish content with no platform text", pkgerrors.ErrLifecycleViolation)
	}
	if !c.Status.CanTransitionTo(types.StatusPublished) {
		return nil, fmt.Errorf("%w: cannot publish %s content", pkgerrors.ErrLifecycleViolation, c.Status)
	}

	if err := m.publisher.Publish(ctx, c); err != nil {
		return nil, err
	}

	c.Status = types.StatusPublished
	if err := m.contents.Update(ctx, nil, c); err != nil {
		return nil, err
	}
	if err := m.syncHistory(ctx, c); err != nil {
		return nil, err
	}
	m.log.Info("Content published", "content_id", c.ID)
	return c, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*types.GeneratedContent, error) {
	return m.contents.GetByID(ctx, nil, id)
}

func (m *Manager) History(ctx context.Context) ([]*types.HistoryEntry, error) {
	return m.history.List(ctx, nil)
}

// Delete removes an entry and its history row; a UI-level operation, never
// called by the pipeline itself.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.contents.Delete(ctx, nil, id); err != nil {
		return err
	}
	if err := m.history.Delete(ctx, nil, id); err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
		return err
	}
	return nil
}

func (m *Manager) syncHistory(ctx context.Context, c *types.GeneratedContent) error {
	return m.history.Upsert(ctx, nil, &types.HistoryEntry{
		ID:           c.ID,
		Title:        historyTitle(c),
		Platforms:    c.Platforms,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		LastModified: time.Now(),
	})
}

func historyTitle(c *types.GeneratedContent) string {
	title := strings.TrimSpace(c.PromptText)
	if title == "" {
		title = "Untitled content"
	}
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	return title
}
