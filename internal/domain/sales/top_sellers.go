// Package sales は配達済み注文から売れ筋ランキングを集計する。
//
// 集計は注文とメニューのスナップショットに対する純粋関数で、DBの集計クエリには依存しない。
package sales

import (
	"sort"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

// DefaultLimit はランキングの件数上限。
const DefaultLimit = 5

type TopSeller struct {
	MenuItemID    string          `json:"_id"`
	Name          string          `json:"name"`
	Category      model.Category  `json:"category"`
	Price         decimal.Decimal `json:"price"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

type group struct {
	menuItemID string
	quantity   int64
	revenue    decimal.Decimal
}

// TopSellers は Delivered の注文だけを対象に、メニューごとの販売数と売上を集計する。
//
// 表示用の名前・カテゴリ・価格は現在のメニューから付与する。メニューが既に削除されている
// グループは結果から除く。並びは販売数の降順、同数なら売上の降順、さらにIDの昇順。
func TopSellers(orders []model.Order, menu map[string]model.MenuItem, limit int) []TopSeller {
	if limit <= 0 {
		return []TopSeller{}
	}

	groups := make(map[string]*group)
	for _, o := range orders {
		if o.Status != model.OrderStatusDelivered {
			continue
		}
		for _, it := range o.Items {
			g, ok := groups[it.MenuItemID]
			if !ok {
				g = &group{menuItemID: it.MenuItemID, revenue: decimal.Zero}
				groups[it.MenuItemID] = g
			}
			g.quantity += int64(it.Quantity)
			g.revenue = g.revenue.Add(it.LineTotal())
		}
	}

	out := make([]TopSeller, 0, len(groups))
	for id, g := range groups {
		m, ok := menu[id]
		if !ok {
			continue
		}
		out = append(out, TopSeller{
			MenuItemID:    id,
			Name:          m.Name,
			Category:      m.Category,
			Price:         m.Price,
			TotalQuantity: g.quantity,
			TotalRevenue:  g.revenue,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalQuantity != b.TotalQuantity {
			return a.TotalQuantity > b.TotalQuantity
		}
		if c := a.TotalRevenue.Cmp(b.TotalRevenue); c != 0 {
			return c > 0
		}
		return a.MenuItemID < b.MenuItemID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
