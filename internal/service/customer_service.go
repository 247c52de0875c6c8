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

// CustomerService defines business operations for restaurant customers.
type CustomerService interface {
	Create(ctx context.Context, scope authz.Scope, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	List(ctx context.Context, scope authz.Scope) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, scope authz.Scope, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	restaurantID, ok := scope.RestaurantID()
	if !ok {
		return nil, apierror.Validation("a specific restaurant scope is required to create a customer")
	}
	c := &model.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		RestaurantID: restaurantID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, scope authz.Scope) ([]dto.CustomerResponse, error) {
	list, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, customerToResponse(&list[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, scope authz.Scope, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.findScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Transaction(err)
	}
	return nil
}

func (s *customerService) findScoped(ctx context.Context, scope authz.Scope, id uuid.UUID) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("customer not found")
		}
		return nil, apierror.Transaction(err)
	}
	if !scope.Contains(c.RestaurantID) {
		return nil, apierror.NotFound("customer not found")
	}
	return c, nil
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		RestaurantID: c.RestaurantID.String(),
	}
}
