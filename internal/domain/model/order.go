package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses は取り得るステータス。遷移の順序は制限しない。
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusList は "Pending, Preparing, ..." 形式の一覧。
func StatusList() string {
	names := make([]string, 0, len(OrderStatuses))
	for _, s := range OrderStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

type Order struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"_id"`
	OrderNumber  string          `gorm:"type:varchar(40);not null;uniqueIndex" json:"orderNumber"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalAmount"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CustomerName string          `gorm:"type:varchar(255);not null" json:"customerName"`
	TableNumber  int             `gorm:"not null" json:"tableNumber"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// MenuItemIDs は注文明細が参照するメニューIDを重複なしで返す。
func MenuItemIDs(orders []Order) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := seen[it.MenuItemID]; ok {
				continue
			}
			seen[it.MenuItemID] = struct{}{}
			ids = append(ids, it.MenuItemID)
		}
	}
	return ids
}
