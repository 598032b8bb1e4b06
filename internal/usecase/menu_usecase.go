package usecase

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

type MenuUsecase struct {
	menu  repo.MenuItemRepository
	ids   IDGenerator
	clock Clock
}

func NewMenuUsecase(menu repo.MenuItemRepository, ids IDGenerator, clock Clock) *MenuUsecase {
	return &MenuUsecase{menu: menu, ids: ids, clock: clock}
}

// 作成・更新の入力。nilは「指定なし」（作成時は既定値、更新時は現状維持）。
type MenuItemInput struct {
	Name            *string
	Description     *string
	Category        *string
	Price           *decimal.Decimal
	Ingredients     []string
	IsAvailable     *bool
	PreparationTime *int
	ImageURL        *string
}

type ListMenuItemsInput struct {
	Page        int
	Limit       int
	Category    string
	IsAvailable *bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

type MenuItemListOutput struct {
	Items []model.MenuItem
	Total int64
	Page  int
	Limit int
}

func (u *MenuUsecase) List(ctx context.Context, in ListMenuItemsInput) (MenuItemListOutput, error) {
	if in.Page < 1 {
		return MenuItemListOutput{}, NewValidationError("Invalid page")
	}
	if in.Limit < 1 || in.Limit > MaxLimit {
		return MenuItemListOutput{}, NewValidationError("Invalid limit")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return MenuItemListOutput{}, NewValidationError("minPrice must be <= maxPrice")
	}

	items, total, err := u.menu.List(ctx, repo.MenuItemListQuery{
		Page:        in.Page,
		Limit:       in.Limit,
		Category:    strings.TrimSpace(in.Category),
		IsAvailable: in.IsAvailable,
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
	})
	if err != nil {
		return MenuItemListOutput{}, NewStoreError(err)
	}

	return MenuItemListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *MenuUsecase) Search(ctx context.Context, q string) ([]model.MenuItem, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, NewValidationError("Search query is required")
	}
	if len(q) > 100 {
		return nil, NewValidationError("Search query is too long")
	}

	items, err := u.menu.Search(ctx, q)
	if err != nil {
		return nil, NewStoreError(err)
	}
	return items, nil
}

func (u *MenuUsecase) Get(ctx context.Context, menuItemID string) (model.MenuItem, error) {
	id, ok := parseID(menuItemID)
	if !ok {
		return model.MenuItem{}, NewInvalidIDError("Invalid menu item ID")
	}

	item, err := u.menu.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewNotFoundError("Menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewStoreError(err)
	}
	return item, nil
}

func (u *MenuUsecase) Create(ctx context.Context, in MenuItemInput) (model.MenuItem, error) {
	now := u.clock.Now()
	item := model.MenuItem{
		ID:              u.ids.NewID(),
		Ingredients:     model.Ingredients{},
		IsAvailable:     true,
		PreparationTime: model.DefaultPreparationTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	errs := applyMenuItemInput(&item, in, true)
	if len(errs) > 0 {
		return model.MenuItem{}, NewValidationError("Validation Error", errs...)
	}

	created, err := u.menu.Create(ctx, item)
	if err != nil {
		return model.MenuItem{}, NewStoreError(err)
	}
	return created, nil
}

// 指定された項目だけ差し替え、結果全体を検証する。
func (u *MenuUsecase) Update(ctx context.Context, menuItemID string, in MenuItemInput) (model.MenuItem, error) {
	id, ok := parseID(menuItemID)
	if !ok {
		return model.MenuItem{}, NewInvalidIDError("Invalid menu item ID")
	}

	item, err := u.menu.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewNotFoundError("Menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewStoreError(err)
	}

	if errs := applyMenuItemInput(&item, in, false); len(errs) > 0 {
		return model.MenuItem{}, NewValidationError("Validation Error", errs...)
	}
	item.UpdatedAt = u.clock.Now()

	if err := u.menu.Update(ctx, item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.MenuItem{}, NewNotFoundError("Menu item not found")
		}
		return model.MenuItem{}, NewStoreError(err)
	}
	return item, nil
}

func (u *MenuUsecase) Delete(ctx context.Context, menuItemID string) error {
	id, ok := parseID(menuItemID)
	if !ok {
		return NewInvalidIDError("Invalid menu item ID")
	}

	err := u.menu.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("Menu item not found")
	}
	if err != nil {
		return NewStoreError(err)
	}
	return nil
}

// 提供可否を反転する。
func (u *MenuUsecase) ToggleAvailability(ctx context.Context, menuItemID string) (model.MenuItem, error) {
	item, err := u.Get(ctx, menuItemID)
	if err != nil {
		return model.MenuItem{}, err
	}

	item.IsAvailable = !item.IsAvailable
	item.UpdatedAt = u.clock.Now()
	if err := u.menu.Update(ctx, item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.MenuItem{}, NewNotFoundError("Menu item not found")
		}
		return model.MenuItem{}, NewStoreError(err)
	}
	return item, nil
}

// 全メニューを消す。既存の注文明細はそのまま残る。
func (u *MenuUsecase) ClearAll(ctx context.Context) (int64, error) {
	n, err := u.menu.DeleteAll(ctx)
	if err != nil {
		return 0, NewStoreError(err)
	}
	return n, nil
}

func applyMenuItemInput(item *model.MenuItem, in MenuItemInput, creating bool) []string {
	var errs []string

	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if item.Name == "" {
		errs = append(errs, "Menu item name is required")
	}

	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}

	if in.Category != nil {
		item.Category = model.Category(strings.TrimSpace(*in.Category))
	}
	if item.Category == "" {
		errs = append(errs, "Category is required")
	} else if !item.Category.Valid() {
		errs = append(errs, string(item.Category)+" is not a valid category")
	}

	switch {
	case in.Price != nil:
		errs = append(errs, priceErrors("", *in.Price)...)
		item.Price = *in.Price
	case creating:
		errs = append(errs, "Price is required")
	}

	if in.Ingredients != nil {
		ing := make(model.Ingredients, 0, len(in.Ingredients))
		for _, s := range in.Ingredients {
			if s = strings.TrimSpace(s); s != "" {
				ing = append(ing, s)
			}
		}
		item.Ingredients = ing
	}

	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}

	if in.PreparationTime != nil {
		if *in.PreparationTime < 0 {
			errs = append(errs, "Preparation time cannot be negative")
		}
		item.PreparationTime = *in.PreparationTime
	}

	if in.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	return errs
}
