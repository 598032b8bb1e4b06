package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ユニーク制約違反（注文番号の衝突など）
	ErrDuplicate = errors.New("duplicate key")
)
