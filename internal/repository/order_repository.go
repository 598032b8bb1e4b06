package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
}

// 注文は明細（OrderItem）を内包して保存・取得する。
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (model.Order, error)
	CreateBulk(ctx context.Context, orders []model.Order) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
	DeleteAll(ctx context.Context) (int64, error)
}
