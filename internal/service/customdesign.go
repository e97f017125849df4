package service

import (
	"context"
	"encoding/json"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
)

type customDesignService struct {
	store repository.Store
}

func NewCustomDesignService(store repository.Store) CustomDesignService {
	return &customDesignService{store: store}
}

func (s *customDesignService) SaveDesign(ctx context.Context, userID int64, in SaveCustomDesignInput) (*domain.CustomDesign, error) {
	design := &domain.CustomDesign{
		UserID:       userID,
		Name:         in.Name,
		FrontDesign:  normalizeDesignJSON(in.FrontDesign),
		BackDesign:   normalizeDesignJSON(in.BackDesign),
		PreviewFront: in.PreviewFront,
		PreviewBack:  in.PreviewBack,
	}
	if design.Name == "" {
		design.Name = "My Custom Design"
	}

	// The base product link is best-effort; saving a layout still works
	// while no blank shirt is configured.
	if base, err := s.GetBaseProduct(ctx); err == nil {
		design.BaseProductID = &base.ID
	}

	if err := s.store.CustomDesigns().Create(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

func (s *customDesignService) ListDesigns(ctx context.Context, userID int64) ([]domain.CustomDesign, error) {
	return s.store.CustomDesigns().ListByUser(ctx, userID)
}

func (s *customDesignService) GetDesign(ctx context.Context, userID, designID int64) (*domain.CustomDesign, error) {
	return s.store.CustomDesigns().GetByID(ctx, designID, userID)
}

func (s *customDesignService) UpdateDesign(ctx context.Context, userID, designID int64, in UpdateCustomDesignInput) (*domain.CustomDesign, error) {
	design, err := s.store.CustomDesigns().GetByID(ctx, designID, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		design.Name = *in.Name
	}
	if in.FrontDesign != nil {
		design.FrontDesign = in.FrontDesign
	}
	if in.BackDesign != nil {
		design.BackDesign = in.BackDesign
	}
	if in.PreviewFront != nil {
		design.PreviewFront = *in.PreviewFront
	}
	if in.PreviewBack != nil {
		design.PreviewBack = *in.PreviewBack
	}
	if err := s.store.CustomDesigns().Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

func (s *customDesignService) DeleteDesign(ctx context.Context, userID, designID int64) error {
	return s.store.CustomDesigns().Delete(ctx, designID, userID)
}

func (s *customDesignService) GetBaseProduct(ctx context.Context) (*domain.Product, error) {
	products, err := s.store.Products().ListActive(ctx, string(domain.ProductCategoryCustom))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return &products[0], nil
}

// normalizeDesignJSON keeps design columns valid JSON even when the editor
// sends nothing for a side.
func normalizeDesignJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("[]")
	}
	return raw
}
