package repository

import (
	"context"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 一覧検索
type MenuItemListQuery struct {
	Page        int
	Limit       int
	Category    string
	IsAvailable *bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

// メニューの永続化（保存・取得）だけを約束。
type MenuItemRepository interface {
	List(ctx context.Context, q MenuItemListQuery) ([]model.MenuItem, int64, error)
	//名前・説明・材料の部分一致（大文字小文字を区別しない）
	Search(ctx context.Context, q string) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id string) (model.MenuItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	CreateBulk(ctx context.Context, items []model.MenuItem) error
	Update(ctx context.Context, item model.MenuItem) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
