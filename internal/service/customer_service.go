package service

import (
	"context"
	"time"

	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
	"github.com/spm-engineering/billing-service/internal/repository"
)

type CustomerService struct {
	repo   repository.CustomerRepository
	logger *logging.Logger
	now    func() time.Time
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logging.NewLogger("customer-service"),
		now:    time.Now,
	}
}

func (s *CustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	c := &models.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		GSTIN:     req.GSTIN,
		PANNumber: req.PANNumber,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if err := ValidateCustomer(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update.
func (s *CustomerService) Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(c)
	if err := ValidateCustomer(c); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c.UpdatedAt = &now
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Debug("Customer updated", logging.Fields{"customer_id": id})
	return c, nil
}

// Delete deactivates the customer; the row is kept for invoices that reference it.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, filter models.ListFilter) ([]*models.Customer, int, error) {
	return s.repo.ListActive(ctx, filter)
}
