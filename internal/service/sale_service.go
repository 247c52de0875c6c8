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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records orders with immutable item snapshots.
type SaleService interface {
	Create(ctx context.Context, actor authz.Actor, scope authz.Scope, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context, scope authz.Scope) ([]dto.SaleResponse, error)
	GetByID(ctx context.Context, scope authz.Scope, id uuid.UUID) (*dto.SaleResponse, error)
	UpdateStatus(ctx context.Context, scope authz.Scope, id uuid.UUID, status string) (*dto.SaleResponse, error)
	Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error
	BulkDelete(ctx context.Context, scope authz.Scope, ids []uuid.UUID) (int64, error)
}

type saleService struct {
	repo repository.SaleRepository
}

func NewSaleService(repo repository.SaleRepository) SaleService {
	return &saleService{repo: repo}
}

// Create persists the sale and its item snapshot in one transaction. The
// items are copied verbatim (product id, name, unit price, quantity) so later
// product edits never touch this record, and the client-supplied total must
// equal the recomputed sum of line subtotals exactly.
func (s *saleService) Create(ctx context.Context, actor authz.Actor, scope authz.Scope, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	restaurantID, ok := scope.RestaurantID()
	if !ok {
		return nil, apierror.Validation("a specific restaurant scope is required to create a sale")
	}

	total := decimal.Zero
	items := make([]model.SaleItem, 0, len(req.Items))
	for i, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid product id in items")
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, model.SaleItem{
			ProductID: pid,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Position:  i,
		})
	}
	if !total.Equal(req.TotalPrice) {
		return nil, apierror.Validation("total_price does not match the sum of item subtotals")
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		d, err := time.Parse(dateLayout, req.SaleDate)
		if err != nil {
			return nil, apierror.Validation("sale_date must be YYYY-MM-DD")
		}
		saleDate = d
	}
	status := req.Status
	if status == "" {
		status = model.SaleStatusPending
	}

	userID := actor.ID
	sale := model.Sale{
		CustomerName: req.CustomerName,
		TableNumber:  req.TableNumber,
		TotalPrice:   total,
		SaleDate:     saleDate,
		Status:       status,
		UserID:       &userID,
		RestaurantID: restaurantID,
		Items:        items,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, &sale)
	})
	if txErr != nil {
		return nil, txError(txErr)
	}

	resp := saleToResponse(&sale)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context, scope authz.Scope) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, saleToResponse(&sales[i]))
	}
	return out, nil
}

func (s *saleService) GetByID(ctx context.Context, scope authz.Scope, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

// UpdateStatus flips a sale between pending and paid; nothing else on the
// record is touched through this path.
func (s *saleService) UpdateStatus(ctx context.Context, scope authz.Scope, id uuid.UUID, status string) (*dto.SaleResponse, error) {
	if status != model.SaleStatusPending && status != model.SaleStatusPaid {
		return nil, apierror.Validation("status must be pending or paid")
	}
	sale, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apierror.Transaction(err)
	}
	sale.Status = status
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, scope, id); err != nil {
		return err
	}
	// Items ride along through the sale_items cascade.
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Transaction(err)
	}
	return nil
}

// BulkDelete removes the listed sales in one statement; an empty list is a
// no-op that reports zero rows, not an error.
func (s *saleService) BulkDelete(ctx context.Context, scope authz.Scope, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.repo.BulkDelete(ctx, scope, ids)
	if err != nil {
		return 0, apierror.Transaction(err)
	}
	return n, nil
}

func (s *saleService) findScoped(ctx context.Context, scope authz.Scope, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("sale not found")
		}
		return nil, apierror.Transaction(err)
	}
	if !scope.Contains(sale.RestaurantID) {
		return nil, apierror.NotFound("sale not found")
	}
	return sale, nil
}

func saleToResponse(s *model.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	userID := ""
	if s.UserID != nil {
		userID = s.UserID.String()
	}
	return dto.SaleResponse{
		ID:           s.ID.String(),
		CustomerName: s.CustomerName,
		TableNumber:  s.TableNumber,
		Items:        items,
		TotalPrice:   s.TotalPrice,
		SaleDate:     s.SaleDate.Format(dateLayout),
		Status:       s.Status,
		UserID:       userID,
		RestaurantID: s.RestaurantID.String(),
	}
}
