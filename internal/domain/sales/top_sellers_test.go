package sales

import (
	"fmt"
	"testing"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(id, name string, price int64) model.MenuItem {
	return model.MenuItem{
		ID:       id,
		Name:     name,
		Category: model.CategoryMainCourse,
		Price:    decimal.NewFromInt(price),
	}
}

func order(status model.OrderStatus, items ...model.OrderItem) model.Order {
	return model.Order{Status: status, Items: items}
}

func line(menuItemID string, qty int, price int64) model.OrderItem {
	return model.OrderItem{MenuItemID: menuItemID, Quantity: qty, Price: decimal.NewFromInt(price)}
}

func TestTopSellers_OnlyDeliveredOrdersCount(t *testing.T) {
	menu := model.IndexMenuItems([]model.MenuItem{menuItem("a", "Butter Chicken", 100)})
	orders := []model.Order{
		order(model.OrderStatusDelivered, line("a", 2, 100)),
		order(model.OrderStatusPending, line("a", 5, 100)),
	}

	got := TopSellers(orders, menu, DefaultLimit)

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].MenuItemID)
	assert.Equal(t, int64(2), got[0].TotalQuantity)
	assert.True(t, decimal.NewFromInt(200).Equal(got[0].TotalRevenue), "revenue=%s", got[0].TotalRevenue)
}

func TestTopSellers_IgnoresEveryNonDeliveredStatus(t *testing.T) {
	menu := model.IndexMenuItems([]model.MenuItem{menuItem("a", "Samosa", 80)})
	var orders []model.Order
	for _, s := range model.OrderStatuses {
		if s == model.OrderStatusDelivered {
			continue
		}
		orders = append(orders, order(s, line("a", 3, 80)))
	}

	assert.Empty(t, TopSellers(orders, menu, DefaultLimit))
}

func TestTopSellers_RanksByQuantityDescending(t *testing.T) {
	menu := model.IndexMenuItems([]model.MenuItem{
		menuItem("a", "Samosa", 80),
		menuItem("b", "Mango Lassi", 100),
	})
	orders := []model.Order{
		order(model.OrderStatusDelivered, line("a", 3, 80)),
		order(model.OrderStatusDelivered, line("b", 2, 100), line("b", 3, 100)),
	}

	got := TopSellers(orders, menu, DefaultLimit)

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].MenuItemID)
	assert.Equal(t, int64(5), got[0].TotalQuantity)
	assert.Equal(t, "a", got[1].MenuItemID)
	assert.Equal(t, int64(3), got[1].TotalQuantity)
}

func TestTopSellers_TruncatesToLimit(t *testing.T) {
	var items []model.MenuItem
	var lines []model.OrderItem
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("item-%d", i)
		items = append(items, menuItem(id, id, 10))
		lines = append(lines, line(id, i+1, 10))
	}
	orders := []model.Order{order(model.OrderStatusDelivered, lines...)}

	got := TopSellers(orders, model.IndexMenuItems(items), DefaultLimit)

	require.Len(t, got, 5)
	assert.Equal(t, "item-7", got[0].MenuItemID)
	assert.Equal(t, "item-3", got[4].MenuItemID)
}

func TestTopSellers_UsesSnapshotPriceForRevenueAndCurrentPriceForDisplay(t *testing.T) {
	// 現在価格は150に変わっているが、売上は注文時の100で計算する
	menu := model.IndexMenuItems([]model.MenuItem{menuItem("a", "Dal Makhani", 150)})
	orders := []model.Order{
		order(model.OrderStatusDelivered, line("a", 2, 100)),
		order(model.OrderStatusDelivered, line("a", 1, 120)),
	}

	got := TopSellers(orders, menu, DefaultLimit)

	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(320).Equal(got[0].TotalRevenue))
	assert.True(t, decimal.NewFromInt(150).Equal(got[0].Price))
	assert.Equal(t, "Dal Makhani", got[0].Name)
}

func TestTopSellers_DropsDeletedMenuItems(t *testing.T) {
	menu := model.IndexMenuItems([]model.MenuItem{menuItem("a", "Gulab Jamun", 120)})
	orders := []model.Order{
		order(model.OrderStatusDelivered, line("a", 1, 120), line("gone", 10, 50)),
	}

	got := TopSellers(orders, menu, DefaultLimit)

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].MenuItemID)
}

func TestTopSellers_TiesBrokenByRevenueThenID(t *testing.T) {
	menu := model.IndexMenuItems([]model.MenuItem{
		menuItem("a", "A", 10),
		menuItem("b", "B", 10),
		menuItem("c", "C", 10),
	})
	orders := []model.Order{
		order(model.OrderStatusDelivered, line("c", 2, 10), line("b", 2, 10), line("a", 2, 30)),
	}

	got := TopSellers(orders, menu, DefaultLimit)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].MenuItemID, got[1].MenuItemID, got[2].MenuItemID})
}

func TestTopSellers_EmptyInput(t *testing.T) {
	got := TopSellers(nil, nil, DefaultLimit)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
