package handlers

import (
	"context"
	"fmt"

	"postcards/application/ports"
	"postcards/application/queries"
	"postcards/application/queries/bus"
	"postcards/domain/core/valueobjects"

	"go.uber.org/zap"
)

// GetPostcardHandler handles GetPostcardQuery
type GetPostcardHandler struct {
	postcardRepo ports.PostcardRepository
	logger       *zap.Logger
}

// NewGetPostcardHandler creates a new handler instance
func NewGetPostcardHandler(postcardRepo ports.PostcardRepository, logger *zap.Logger) *GetPostcardHandler {
	return &GetPostcardHandler{
		postcardRepo: postcardRepo,
		logger:       logger,
	}
}

// Handle implements bus.QueryHandler
func (h *GetPostcardHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetPostcardQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	slugID, err := valueobjects.NewSlugIDFromString(q.SlugID)
	if err != nil {
		return nil, err
	}

	postcard, err := h.postcardRepo.GetBySlug(ctx, slugID)
	if err != nil {
		return nil, err
	}

	result := ToPostcardResult(postcard)
	return &result, nil
}
