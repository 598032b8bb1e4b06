package model

import "github.com/shopspring/decimal"

// 金額カラムの精度。価格は numeric(12,2)、合計は numeric(14,2)。
const MoneyScale = 2

var (
	MaxPrice       = decimal.New(1, 10)
	MaxTotalAmount = decimal.New(1, 12)
)

// 小数2桁を超える端数がなければtrue（"1.500" のような末尾0は可）
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
