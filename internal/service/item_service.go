package service

import (
	"context"
	"time"

	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
	"github.com/spm-engineering/billing-service/internal/repository"
)

type ItemService struct {
	repo   repository.ItemRepository
	logger *logging.Logger
	now    func() time.Time
}

func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{
		repo:   repo,
		logger: logging.NewLogger("item-service"),
		now:    time.Now,
	}
}

func (s *ItemService) Create(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	it := &models.Item{
		Name:          req.Name,
		Description:   req.Description,
		HSNSAC:        req.HSNSAC,
		UOM:           req.UOM,
		Rate:          req.Rate,
		GSTPercentage: req.GSTPercentage,
		IsActive:      true,
		CreatedAt:     s.now().UTC(),
	}
	if err := ValidateItem(it); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ItemService) Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(it)
	if err := ValidateItem(it); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	it.UpdatedAt = &now
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Debug("Item updated", logging.Fields{"item_id": id})
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *ItemService) List(ctx context.Context, filter models.ListFilter) ([]*models.Item, int, error) {
	return s.repo.ListActive(ctx, filter)
}
