package service

import (
	"context"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/repository"
)

type designService struct {
	store repository.Store
	// defaultStock seeds the storefront product created on approval.
	defaultStock int32
}

func NewDesignService(store repository.Store, defaultStock int32) DesignService {
	if defaultStock <= 0 {
		defaultStock = 100
	}
	return &designService{store: store, defaultStock: defaultStock}
}

func (s *designService) SubmitDesign(ctx context.Context, designerID int64, name, image, description string, priceCents int64) (*domain.Design, error) {
	design := &domain.Design{
		Name:        name,
		DesignerID:  designerID,
		Image:       image,
		Status:      domain.DesignStatusPending,
		PriceCents:  priceCents,
		Description: description,
	}
	if err := s.store.Designs().Create(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

func (s *designService) ListDesignerDesigns(ctx context.Context, designerID int64) ([]domain.Design, error) {
	return s.store.Designs().ListByDesigner(ctx, designerID)
}

func (s *designService) ListByStatus(ctx context.Context, status domain.DesignStatus) ([]domain.Design, error) {
	return s.store.Designs().ListByStatus(ctx, status)
}

// ApproveDesign flips the design to approved and creates its storefront
// product, linking the two, in one transaction.
func (s *designService) ApproveDesign(ctx context.Context, designID int64) (*domain.Design, error) {
	var design *domain.Design
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		d, err := st.Designs().GetByID(ctx, designID)
		if err != nil {
			return err
		}
		design = d
		if d.Status == domain.DesignStatusApproved {
			return nil
		}

		designer, err := st.Users().GetByID(ctx, d.DesignerID)
		if err != nil {
			return err
		}

		product := &domain.Product{
			Name:          d.Name,
			PriceCents:    d.PriceCents,
			Category:      domain.ProductCategoryDesigner,
			Description:   d.Description,
			Image:         d.Image,
			Sizes:         []string{"S", "M", "L", "XL"},
			Colors:        []domain.Color{},
			DesignerID:    &d.DesignerID,
			DesignerName:  designer.Name,
			IsNew:         true,
			IsActive:      true,
			StockQuantity: s.defaultStock,
		}
		if err := st.Products().Create(ctx, product); err != nil {
			return err
		}

		d.Status = domain.DesignStatusApproved
		d.RejectionReason = ""
		d.ProductID = &product.ID
		return st.Designs().Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return design, nil
}

func (s *designService) RejectDesign(ctx context.Context, designID int64, reason string) (*domain.Design, error) {
	design, err := s.store.Designs().GetByID(ctx, designID)
	if err != nil {
		return nil, err
	}
	design.Status = domain.DesignStatusRejected
	design.RejectionReason = reason
	if err := s.store.Designs().Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

func (s *designService) GetDesignerStats(ctx context.Context, designerID int64) (*DesignerStats, error) {
	designs, err := s.store.Designs().ListByDesigner(ctx, designerID)
	if err != nil {
		return nil, err
	}
	balance, err := s.store.Users().GetWalletBalance(ctx, designerID)
	if err != nil {
		return nil, err
	}

	stats := &DesignerStats{
		TotalDesigns:       len(designs),
		WalletBalanceCents: balance,
	}
	for _, d := range designs {
		switch d.Status {
		case domain.DesignStatusApproved:
			stats.ApprovedDesigns++
		case domain.DesignStatusPending:
			stats.PendingDesigns++
		}
		stats.TotalSales += d.Sales
		stats.TotalRevenueCents += d.RevenueCents
	}
	stats.TotalCommissionCents = domain.Commission(stats.TotalRevenueCents)
	return stats, nil
}
