package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/savoria/savoria-api/models"
)

// GormOrderStore persists orders through gorm. The order row and its item
// rows go into one database transaction, so a failure anywhere rolls back
// everything and an order can never be committed without its items.
type GormOrderStore struct {
	DB *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{DB: db}
}

func (s *GormOrderStore) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormOrderStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Preload("OrderItems").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *GormOrderStore) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	result := s.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
