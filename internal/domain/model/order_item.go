package model

import "github.com/shopspring/decimal"

// OrderItem は注文時点の明細スナップショット。
// MenuItemID は弱参照で、メニュー削除時も明細は残る。
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID    string          `gorm:"type:varchar(36);not null;index" json:"-"`
	MenuItemID string          `gorm:"type:varchar(36);not null;index" json:"menuItem"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
