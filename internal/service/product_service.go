package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const productCacheTTL = 5 * time.Minute

// ProductService is the tenant-scoped menu catalog. Reads for a single
// tenant go through a redis cache keyed per restaurant; any write
// invalidates that tenant's entry.
type ProductService interface {
	Create(ctx context.Context, scope authz.Scope, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, scope authz.Scope) ([]dto.ProductResponse, error)
	Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func productCacheKey(restaurantID uuid.UUID) string {
	return "products:" + restaurantID.String()
}

func (s *productService) Create(ctx context.Context, scope authz.Scope, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	restaurantID, ok := scope.RestaurantID()
	if !ok {
		return nil, apierror.Validation("a specific restaurant scope is required to create a product")
	}
	p := &model.Product{
		Name:         req.Name,
		Price:        req.Price,
		Category:     req.Category,
		RestaurantID: restaurantID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Transaction(err)
	}
	s.invalidate(ctx, restaurantID)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, scope authz.Scope) ([]dto.ProductResponse, error) {
	if restaurantID, ok := scope.RestaurantID(); ok && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, productCacheKey(restaurantID)).Bytes(); err == nil {
			var out []dto.ProductResponse
			if json.Unmarshal(cached, &out) == nil {
				return out, nil
			}
		}
	}

	products, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}

	if restaurantID, ok := scope.RestaurantID(); ok && s.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, productCacheKey(restaurantID), data, productCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("product cache set failed")
			}
		}
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Transaction(err)
	}
	s.invalidate(ctx, p.RestaurantID)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error {
	p, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Transaction(err)
	}
	s.invalidate(ctx, p.RestaurantID)
	return nil
}

// findScoped fetches a product and hides rows outside the scope behind a
// not-found, so cross-tenant probing cannot confirm existence.
func (s *productService) findScoped(ctx context.Context, scope authz.Scope, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product not found")
		}
		return nil, apierror.Transaction(err)
	}
	if !scope.Contains(p.RestaurantID) {
		return nil, apierror.NotFound("product not found")
	}
	return p, nil
}

func (s *productService) invalidate(ctx context.Context, restaurantID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, productCacheKey(restaurantID)).Err(); err != nil {
		log.Warn().Err(err).Msg("product cache invalidation failed")
	}
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Price:        p.Price,
		Category:     p.Category,
		RestaurantID: p.RestaurantID.String(),
	}
}
