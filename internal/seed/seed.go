// Package seed はサンプルのメニューと注文を投入する。全件削除もここで行う。
package seed

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
	"backoffice/internal/logging"
	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
)

type Seeder struct {
	tx      repo.TransactionManager
	menu    repo.MenuItemRepository
	numbers usecase.OrderNumberGenerator
	ids     usecase.IDGenerator
	clock   usecase.Clock
}

func New(
	tx repo.TransactionManager,
	menu repo.MenuItemRepository,
	numbers usecase.OrderNumberGenerator,
	ids usecase.IDGenerator,
	clock usecase.Clock,
) *Seeder {
	return &Seeder{tx: tx, menu: menu, numbers: numbers, ids: ids, clock: clock}
}

type Cleared struct {
	MenuItems int64
	Orders    int64
}

// メニュー・注文・注文の監査ログをまとめて消す。
func (s *Seeder) ClearAll(ctx context.Context) (Cleared, error) {
	var out Cleared
	err := s.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return clearAll(ctx, r, &out)
	})
	return out, err
}

func clearAll(ctx context.Context, r repo.TxRepos, out *Cleared) error {
	orders, err := r.Orders().DeleteAll(ctx)
	if err != nil {
		return err
	}
	if err := r.AuditLogs().DeleteByResourceType(ctx, model.AuditResourceOrder); err != nil {
		return err
	}
	items, err := r.MenuItems().DeleteAll(ctx)
	if err != nil {
		return err
	}
	out.Orders, out.MenuItems = orders, items
	return nil
}

// 既存データを消してからサンプルを入れ直す。
func (s *Seeder) Reset(ctx context.Context) error {
	l := logging.FromContext(ctx)
	now := s.clock.Now()

	menu := s.buildMenu(now)
	orders := s.buildOrders(menu, now)

	err := s.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var cleared Cleared
		if err := clearAll(ctx, r, &cleared); err != nil {
			return err
		}
		l.Info("cleared old data", "menu_items", cleared.MenuItems, "orders", cleared.Orders)

		if err := r.MenuItems().CreateBulk(ctx, menu); err != nil {
			return err
		}
		if err := r.Orders().CreateBulk(ctx, orders); err != nil {
			return err
		}
		for _, o := range orders {
			if err := r.AuditLogs().Create(ctx, model.AuditLog{
				Action:       model.AuditActionCreateOrder,
				ResourceType: model.AuditResourceOrder,
				ResourceID:   o.ID,
				AfterJSON:    `{"status":"` + string(o.Status) + `"}`,
				CreatedAt:    o.CreatedAt,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.Info("database seeded", "menu_items", len(menu), "orders", len(orders))
	return nil
}

// メニューが空のときだけ投入する。投入したらtrue。
func (s *Seeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.menu.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := s.Reset(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Seeder) buildMenu(now time.Time) []model.MenuItem {
	items := make([]model.MenuItem, 0, len(sampleMenu))
	for i, m := range sampleMenu {
		m.ID = s.ids.NewID()
		m.IsAvailable = true
		// 一覧（新しい順）で並びが安定するよう1msずつずらす
		m.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		m.UpdatedAt = m.CreatedAt
		items = append(items, m)
	}
	return items
}

func (s *Seeder) buildOrders(menu []model.MenuItem, now time.Time) []model.Order {
	orders := make([]model.Order, 0, len(sampleOrders))
	for i, so := range sampleOrders {
		at := now.Add(time.Duration(len(menu)+i) * time.Millisecond)

		lines := make([]model.OrderItem, 0, len(so.lines))
		total := decimal.Zero
		for _, sl := range so.lines {
			it := model.OrderItem{
				MenuItemID: menu[sl.menuIndex].ID,
				Quantity:   sl.quantity,
				Price:      menu[sl.menuIndex].Price,
			}
			total = total.Add(it.LineTotal())
			lines = append(lines, it)
		}

		orders = append(orders, model.Order{
			ID:           s.ids.NewID(),
			OrderNumber:  s.numbers.Next(at),
			Items:        lines,
			TotalAmount:  total,
			Status:       so.status,
			CustomerName: so.customerName,
			TableNumber:  so.tableNumber,
			CreatedAt:    at,
			UpdatedAt:    at,
		})
	}
	return orders
}
