package handlers

import (
	"context"
	"fmt"

	"postcards/application/queries"
	"postcards/application/queries/bus"
	"postcards/application/services"
	"postcards/domain/narrative"

	"go.uber.org/zap"
)

// GetFlowHandler handles GetFlowQuery
type GetFlowHandler struct {
	flowService *services.FlowService
	logger      *zap.Logger
}

// NewGetFlowHandler creates a new handler instance
func NewGetFlowHandler(flowService *services.FlowService, logger *zap.Logger) *GetFlowHandler {
	return &GetFlowHandler{flowService: flowService, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *GetFlowHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.GetFlowQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	snap, err := h.flowService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := &queries.GetFlowResult{
		Entry:     narrative.EntryNodeID,
		Flow:      snap.Flow,
		UserCards: snap.UserCards,
	}
	for _, w := range snap.Warnings {
		result.Warnings = append(result.Warnings, queries.FlowWarning{From: w.From, To: w.To})
	}
	return result, nil
}

// AdvanceFlowHandler handles AdvanceFlowQuery
type AdvanceFlowHandler struct {
	flowService *services.FlowService
	logger      *zap.Logger
}

// NewAdvanceFlowHandler creates a new handler instance
func NewAdvanceFlowHandler(flowService *services.FlowService, logger *zap.Logger) *AdvanceFlowHandler {
	return &AdvanceFlowHandler{flowService: flowService, logger: logger}
}

// Handle implements bus.QueryHandler
func (h *AdvanceFlowHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.AdvanceFlowQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	decision, snap, err := h.flowService.Advance(ctx, q.CurrentID)
	if err != nil {
		return nil, err
	}

	if decision.ReturnHome {
		return &queries.AdvanceFlowResult{ReturnHome: true}, nil
	}

	result := &queries.AdvanceFlowResult{
		NextID:               decision.NextID,
		RequiresInterstitial: decision.RequiresInterstitial,
	}

	if decision.RequiresInterstitial {
		i := narrative.InterstitialFor(snap.Catalog, q.CurrentID, decision.NextID)
		result.Interstitial = &queries.InterstitialResult{
			Title:      i.Title,
			Subtitle:   i.Subtitle,
			DurationMs: i.DurationMs,
		}
	}

	if card, ok := snap.Catalog[decision.NextID]; ok {
		result.Card = cardToResult(card)
	}

	return result, nil
}

func cardToResult(card narrative.Card) *queries.PostcardResult {
	source := "user"
	if narrative.IsStoryShaped(card.SlugID) {
		source = "seed"
	}
	return &queries.PostcardResult{
		Source:          source,
		SlugID:          card.SlugID,
		To:              card.To,
		From:            card.From,
		Postmarked:      card.Postmarked,
		Message:         card.Message,
		Illustration:    card.Illustration,
		TransitionLabel: card.TransitionLabel,
		ChoiceLabel:     card.ChoiceLabel,
		Scene:           card.Scene,
		CreatedAt:       card.Date,
	}
}
