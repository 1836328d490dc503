package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Menu categories shown on the ordering page.
const (
	CategoryStarters = "starters"
	CategoryMains    = "mains"
	CategoryDesserts = "desserts"
)

type MenuItem struct {
	gorm.Model
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category" binding:"required"`
	Available   bool            `json:"available" gorm:"default:true"`
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryStarters, CategoryMains, CategoryDesserts:
		return true
	}
	return false
}
