package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/savoria/savoria-api/models"
)

func menuItem(id uint, name, price string) models.MenuItem {
	return models.MenuItem{
		Model:     gorm.Model{ID: id},
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  models.CategoryMains,
		Available: true,
	}
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	cart := NewCart()
	pizza := menuItem(1, "Margherita Pizza", "14.99")

	cart.AddItem(pizza)
	cart.AddItem(pizza)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	cart := NewCart()
	cart.AddItem(menuItem(2, "Truffle Pasta", "18.99"))
	cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
	cart.AddItem(menuItem(2, "Truffle Pasta", "18.99"))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Truffle Pasta", lines[0].Item.Name)
	assert.Equal(t, "Margherita Pizza", lines[1].Item.Name)
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart()
	cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
	cart.AddItem(menuItem(3, "Caprese Salad", "12.99"))

	cart.RemoveItem(1)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(3), lines[0].Item.ID)

	// Removing an item that is not in the cart changes nothing.
	cart.RemoveItem(99)
	assert.Len(t, cart.Lines(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"replace with larger", 5, 5},
		{"replace with one", 1, 1},
		{"zero is ignored", 0, 3},
		{"negative is ignored", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
			cart.UpdateQuantity(1, 3)

			cart.UpdateQuantity(1, tt.quantity)

			lines := cart.Lines()
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0].Quantity)
		})
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	cart := NewCart()
	cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))

	cart.UpdateQuantity(42, 7)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestTotalUsesExactDecimalArithmetic(t *testing.T) {
	cart := NewCart()
	cart.AddItem(menuItem(1, "Olives", "0.10"))
	cart.UpdateQuantity(1, 3)

	// 3 x 0.10 must be exactly 0.30, with no float drift.
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("0.30")),
		"got %s", cart.Total())
}

func TestTotal(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.Total().IsZero())

	cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
	cart.AddItem(menuItem(2, "Truffle Pasta", "18.99"))
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("33.98")),
		"got %s", cart.Total())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestCartStoreSessionsAreIsolated(t *testing.T) {
	store := NewCartStore()

	idA, cartA := store.NewSession()
	idB, cartB := store.NewSession()
	require.NotEqual(t, idA, idB)

	cartA.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
	assert.True(t, cartB.IsEmpty())

	assert.Same(t, cartA, store.Get(idA))
	assert.Nil(t, store.Get("unknown-session"))

	store.Discard(idA)
	assert.Nil(t, store.Get(idA))
	assert.Same(t, cartB, store.Get(idB))
}
