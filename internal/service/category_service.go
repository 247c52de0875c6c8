package service

import (
	"context"
	"errors"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, scope authz.Scope, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context, scope authz.Scope) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, scope authz.Scope, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	restaurantID, ok := scope.RestaurantID()
	if !ok {
		return nil, apierror.Validation("a specific restaurant scope is required to create a category")
	}

	// Duplicate names within a tenant are confusing; refuse them.
	if existing, err := s.repo.FindByName(ctx, restaurantID, req.Name); err == nil && existing != nil {
		return nil, apierror.Conflict("a category with this name already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Transaction(err)
	}

	c := &model.Category{Name: req.Name, RestaurantID: restaurantID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, scope authz.Scope) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, categoryToResponse(&list[i]))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != c.Name {
		if existing, err := s.repo.FindByName(ctx, c.RestaurantID, *req.Name); err == nil && existing.ID != id {
			return nil, apierror.Conflict("a category with this name already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Transaction(err)
		}
		c.Name = *req.Name
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Transaction(err)
	}
	return nil
}

func (s *categoryService) findScoped(ctx context.Context, scope authz.Scope, id uuid.UUID) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("category not found")
		}
		return nil, apierror.Transaction(err)
	}
	if !scope.Contains(c.RestaurantID) {
		return nil, apierror.NotFound("category not found")
	}
	return c, nil
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		RestaurantID: c.RestaurantID.String(),
	}
}
