package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("Shipped").Valid())
	assert.False(t, OrderStatus("pending").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.Equal(t, "Pending, Preparing, Ready, Delivered, Cancelled", StatusList())
}

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategoryMainCourse.Valid())
	assert.False(t, Category("Snack").Valid())
}

func TestOrderItem_LineTotal(t *testing.T) {
	it := OrderItem{Quantity: 3, Price: decimal.RequireFromString("99.90")}
	assert.True(t, decimal.RequireFromString("299.70").Equal(it.LineTotal()))
}

func TestMenuItemIDs_Deduplicates(t *testing.T) {
	orders := []Order{
		{Items: []OrderItem{{MenuItemID: "a"}, {MenuItemID: "b"}}},
		{Items: []OrderItem{{MenuItemID: "a"}}},
	}
	assert.Equal(t, []string{"a", "b"}, MenuItemIDs(orders))
	assert.Empty(t, MenuItemIDs(nil))
}

func TestIngredients_ValueAndScan(t *testing.T) {
	v, err := Ingredients{"Paneer", "Yogurt"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Paneer","Yogurt"]`, v)

	v, err = Ingredients(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var in Ingredients
	require.NoError(t, in.Scan([]byte(`["Rice"]`)))
	assert.Equal(t, Ingredients{"Rice"}, in)

	require.NoError(t, in.Scan(nil))
	assert.Equal(t, Ingredients{}, in)

	assert.Error(t, in.Scan(42))
}

func TestMenuItem_JSON(t *testing.T) {
	b, err := json.Marshal(MenuItem{ID: "x", Price: decimal.RequireFromString("280.50")})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "x", raw["_id"])
	assert.Equal(t, []any{}, raw["ingredients"])

	var back MenuItem
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, decimal.RequireFromString("280.5").Equal(back.Price))
}

func TestHasMoneyScale(t *testing.T) {
	for s, want := range map[string]bool{
		"280":    true,
		"350.5":  true,
		"99.99":  true,
		"99.500": true,
		"0.005":  false,
		"12.345": false,
	} {
		assert.Equal(t, want, HasMoneyScale(decimal.RequireFromString(s)), s)
	}
}
