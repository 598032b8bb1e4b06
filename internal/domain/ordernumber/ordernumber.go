// Package ordernumber は "ORD-<時刻base36>-<乱数4桁>" 形式の注文番号を作る。
//
// 一意性は確率的なもので、最終的にはDBのユニーク制約で担保する。
package ordernumber

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	prefix       = "ORD"
	suffixLength = 4
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type Generator struct {
	intN func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{intN: rand.Intn}
}

// NewGeneratorWithSource はテスト用に乱数源を差し替える。
func NewGeneratorWithSource(intN func(n int) int) *Generator {
	return &Generator{intN: intN}
}

func (g *Generator) Next(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	var b strings.Builder
	b.Grow(len(prefix) + len(ts) + suffixLength + 2)
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(ts)
	b.WriteByte('-')
	for i := 0; i < suffixLength; i++ {
		b.WriteByte(alphabet[g.intN(len(alphabet))])
	}
	return b.String()
}
