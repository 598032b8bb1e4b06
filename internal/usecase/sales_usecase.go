package usecase

import (
	"context"

	"backoffice/internal/domain/model"
	"backoffice/internal/domain/sales"
	repo "backoffice/internal/repository"
)

type SalesUsecase struct {
	tx repo.TransactionManager
}

func NewSalesUsecase(tx repo.TransactionManager) *SalesUsecase {
	return &SalesUsecase{tx: tx}
}

// 配達済み注文とメニューを同じTxで読み、集計はメモリ上で行う。
func (u *SalesUsecase) TopSellers(ctx context.Context) ([]sales.TopSeller, error) {
	var orders []model.Order
	var items []model.MenuItem

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		orders, err = r.Orders().ListByStatus(ctx, model.OrderStatusDelivered)
		if err != nil {
			return err
		}
		items, err = r.MenuItems().FindByIDs(ctx, model.MenuItemIDs(orders))
		return err
	})
	if err != nil {
		return nil, NewStoreError(err)
	}

	return sales.TopSellers(orders, model.IndexMenuItems(items), sales.DefaultLimit), nil
}
