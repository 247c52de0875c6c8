package service

import (
	"context"
	"errors"
	"time"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// PurchaseService defines business operations for inventory purchases.
type PurchaseService interface {
	Create(ctx context.Context, scope authz.Scope, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	List(ctx context.Context, scope authz.Scope) ([]dto.PurchaseResponse, error)
	Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error)
	Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error
}

type purchaseService struct {
	repo repository.PurchaseRepository
}

func NewPurchaseService(repo repository.PurchaseRepository) PurchaseService {
	return &purchaseService{repo: repo}
}

func (s *purchaseService) Create(ctx context.Context, scope authz.Scope, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	restaurantID, ok := scope.RestaurantID()
	if !ok {
		return nil, apierror.Validation("a specific restaurant scope is required to create a purchase")
	}
	date, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		return nil, apierror.Validation("purchase_date must be YYYY-MM-DD")
	}
	p := &model.Purchase{
		ProductName:  req.ProductName,
		Supplier:     req.Supplier,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		PurchaseDate: date,
		RestaurantID: restaurantID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := purchaseToResponse(p)
	return &resp, nil
}

func (s *purchaseService) List(ctx context.Context, scope authz.Scope) ([]dto.PurchaseResponse, error) {
	list, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for i := range list {
		out = append(out, purchaseToResponse(&list[i]))
	}
	return out, nil
}

func (s *purchaseService) Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.ProductName != nil {
		p.ProductName = *req.ProductName
	}
	if req.Supplier != nil {
		p.Supplier = *req.Supplier
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.PurchaseDate != nil {
		date, err := time.Parse(dateLayout, *req.PurchaseDate)
		if err != nil {
			return nil, apierror.Validation("purchase_date must be YYYY-MM-DD")
		}
		p.PurchaseDate = date
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := purchaseToResponse(p)
	return &resp, nil
}

func (s *purchaseService) Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Transaction(err)
	}
	return nil
}

func (s *purchaseService) findScoped(ctx context.Context, scope authz.Scope, id uuid.UUID) (*model.Purchase, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("purchase not found")
		}
		return nil, apierror.Transaction(err)
	}
	if !scope.Contains(p.RestaurantID) {
		return nil, apierror.NotFound("purchase not found")
	}
	return p, nil
}

func purchaseToResponse(p *model.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:           p.ID.String(),
		ProductName:  p.ProductName,
		Supplier:     p.Supplier,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		PurchaseDate: p.PurchaseDate.Format(dateLayout),
		RestaurantID: p.RestaurantID.String(),
	}
}
