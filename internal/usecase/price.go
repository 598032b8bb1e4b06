package usecase

import (
	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 保存先のカラムに丸めずに入る価格かを検証する。
func priceErrors(prefix string, p decimal.Decimal) []string {
	var errs []string
	if p.IsNegative() {
		errs = append(errs, prefix+"Price cannot be negative")
	}
	if !model.HasMoneyScale(p) {
		errs = append(errs, prefix+"Price can have at most 2 decimal places")
	}
	if p.GreaterThanOrEqual(model.MaxPrice) {
		errs = append(errs, prefix+"Price must be less than "+model.MaxPrice.String())
	}
	return errs
}
