package services

import (
	"context"
	"fmt"
	"time"

	"postcards/application/ports"
	"postcards/domain/core/entities"
	"postcards/domain/narrative"

	"go.uber.org/zap"
)

// Snapshot is one immutable view of the story graph: the derived flow
// table plus the catalog backing interstitial copy. A snapshot is built
// once from a consistent read of the store and then shared read-only.
type Snapshot struct {
	Flow      narrative.FlowTable
	Catalog   narrative.Catalog
	Warnings  []narrative.EdgeWarning
	UserCards int
	BuiltAt   time.Time
}

// FlowService derives flow snapshots from the postcard store.
// Used directly by the query handlers without the overhead of a
// second dispatch through the bus.
type FlowService struct {
	postcardRepo ports.PostcardRepository
	logger       *zap.Logger
}

// NewFlowService creates a new flow service
func NewFlowService(
	postcardRepo ports.PostcardRepository,
	logger *zap.Logger,
) *FlowService {
	return &FlowService{
		postcardRepo: postcardRepo,
		logger:       logger,
	}
}

// Snapshot builds a fresh snapshot from the store. The table is
// rebuilt on every request so a write-back lands in the very next
// walk, no matter which process stored it.
func (s *FlowService) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.build(ctx)
}

type fetchResult struct {
	cards []*entities.Postcard
	err   error
}

// build fetches seed and user cards concurrently and derives a fresh
// snapshot. The two fetches are independent reads; the snapshot is
// assembled only after both complete, so a half-fetched state is never
// visible to callers.
func (s *FlowService) build(ctx context.Context) (*Snapshot, error) {
	seedCh := make(chan fetchResult, 1)
	userCh := make(chan fetchResult, 1)

	go func() {
		cards, err := s.postcardRepo.List(ctx, ports.ListFilter{Source: entities.SourceSeed})
		seedCh <- fetchResult{cards: cards, err: err}
	}()
	go func() {
		cards, err := s.postcardRepo.List(ctx, ports.ListFilter{Source: entities.SourceUser})
		userCh <- fetchResult{cards: cards, err: err}
	}()

	var seedRes, userRes fetchResult
	for i := 0; i < 2; i++ {
		select {
		case seedRes = <-seedCh:
		case userRes = <-userCh:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if seedRes.err != nil {
		return nil, fmt.Errorf("failed to load seed postcards: %w", seedRes.err)
	}
	if userRes.err != nil {
		return nil, fmt.Errorf("failed to load user postcards: %w", userRes.err)
	}

	seedCards := toCards(seedRes.cards)
	if len(seedCards) == 0 {
		// The store has not been seeded; fall back to the compiled-in
		// story so the walk still works.
		s.logger.Warn("No seed postcards in store, using built-in story")
		seedCards = narrative.SeedCards
	}
	userCards := toCards(userRes.cards)

	flow, warnings := narrative.BuildFlow(narrative.StaticFlow, seedCards, userCards)
	for _, w := range warnings {
		s.logger.Warn("Suspicious flow edge",
			zap.String("from", w.From),
			zap.String("to", w.To),
		)
	}

	// Seed cards first so a colliding user slug never shadows the story.
	catalog := narrative.NewCatalog(seedCards, userCards)

	snap := &Snapshot{
		Flow:      flow,
		Catalog:   catalog,
		Warnings:  warnings,
		UserCards: len(userCards),
		BuiltAt:   time.Now(),
	}

	s.logger.Debug("Built flow snapshot",
		zap.Int("edges", len(flow)),
		zap.Int("userCards", len(userCards)),
		zap.Int("warnings", len(warnings)),
	)

	return snap, nil
}

// Advance resolves one step of the walk against the current snapshot.
func (s *FlowService) Advance(ctx context.Context, currentID string) (narrative.Decision, *Snapshot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return narrative.Decision{}, nil, err
	}

	decision := narrative.Advance(snap.Flow, currentID)
	if decision.ReturnHome && currentID != narrative.WriteBackNodeID {
		s.logger.Info("Walk ended on missing edge", zap.String("current", currentID))
	}
	return decision, snap, nil
}

func toCards(postcards []*entities.Postcard) []narrative.Card {
	cards := make([]narrative.Card, 0, len(postcards))
	for _, p := range postcards {
		cards = append(cards, p.ToCard())
	}
	return cards
}
