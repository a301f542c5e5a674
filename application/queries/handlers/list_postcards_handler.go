package handlers

import (
	"context"
	"fmt"
	"time"

	"postcards/application/ports"
	"postcards/application/queries"
	"postcards/application/queries/bus"
	"postcards/domain/core/entities"

	"go.uber.org/zap"
)

// ListPostcardsHandler handles ListPostcardsQuery
type ListPostcardsHandler struct {
	postcardRepo ports.PostcardRepository
	logger       *zap.Logger
}

// NewListPostcardsHandler creates a new handler instance
func NewListPostcardsHandler(postcardRepo ports.PostcardRepository, logger *zap.Logger) *ListPostcardsHandler {
	return &ListPostcardsHandler{
		postcardRepo: postcardRepo,
		logger:       logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ListPostcardsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListPostcardsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	postcards, err := h.postcardRepo.List(ctx, ports.ListFilter{
		Source: entities.PostcardSource(q.Source),
		Scene:  q.Scene,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	result := &queries.ListPostcardsResult{Total: len(postcards)}

	if q.Grouped {
		result.Grouped = make(map[string][]queries.PostcardResult)
		for _, p := range postcards {
			scene := p.Scene()
			if scene == "" {
				scene = "unsorted"
			}
			result.Grouped[scene] = append(result.Grouped[scene], ToPostcardResult(p))
		}
		return result, nil
	}

	result.Postcards = make([]queries.PostcardResult, 0, len(postcards))
	for _, p := range postcards {
		result.Postcards = append(result.Postcards, ToPostcardResult(p))
	}
	return result, nil
}

// ToPostcardResult converts an entity to its read-model view
func ToPostcardResult(p *entities.Postcard) queries.PostcardResult {
	return queries.PostcardResult{
		SlugID:          p.SlugID().String(),
		To:              p.Message().To(),
		From:            p.Message().From(),
		Postmarked:      p.Postmarked(),
		Message:         p.Message().Body(),
		Illustration:    p.Illustration(),
		TransitionLabel: p.TransitionLabel(),
		ChoiceLabel:     p.ChoiceLabel(),
		Scene:           p.Scene(),
		Source:          string(p.Source()),
		CreatedAt:       p.CreatedAt().UTC().Format(time.RFC3339),
	}
}
