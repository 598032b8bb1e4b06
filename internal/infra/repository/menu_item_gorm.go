package repository

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

// カテゴリ/提供可否/価格帯で絞り込み、新しい順・ページング付きで返す。
func (r *MenuItemGormRepository) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&model.MenuItem{})
		if q.Category != "" {
			tx = tx.Where("category = ?", q.Category)
		}
		if q.IsAvailable != nil {
			tx = tx.Where("is_available = ?", *q.IsAvailable)
		}
		//価格帯
		if q.MinPrice != nil {
			tx = tx.Where("price >= ?", *q.MinPrice)
		}
		if q.MaxPrice != nil {
			tx = tx.Where("price <= ?", *q.MaxPrice)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return []model.MenuItem{}, 0, err
	}

	items := []model.MenuItem{}
	offset := (q.Page - 1) * q.Limit
	if err := filtered().Order("created_at desc").Order("id desc").Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return []model.MenuItem{}, 0, err
	}
	return items, total, nil
}

func (r *MenuItemGormRepository) Search(ctx context.Context, q string) ([]model.MenuItem, error) {
	like := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"

	items := []model.MenuItem{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(ingredients) LIKE ? ESCAPE '\'`, like, like, like).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, id string) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

// 見つからないIDは無視する（削除済みメニューの参照など）
func (r *MenuItemGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return []model.MenuItem{}, nil
	}
	items := []model.MenuItem{}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *MenuItemGormRepository) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

func (r *MenuItemGormRepository) CreateBulk(ctx context.Context, items []model.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ゼロ値（false / 0）も更新するため map で渡す
func (r *MenuItemGormRepository) Update(ctx context.Context, item model.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":             item.Name,
		"description":      item.Description,
		"category":         item.Category,
		"price":            item.Price,
		"ingredients":      item.Ingredients,
		"is_available":     item.IsAvailable,
		"preparation_time": item.PreparationTime,
		"image_url":        item.ImageURL,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 物理削除。過去の注文明細は弱参照のまま残る。
func (r *MenuItemGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuItemGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.MenuItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
