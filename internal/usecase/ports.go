package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// 注文番号の採番
type OrderNumberGenerator interface {
	Next(now time.Time) string
}

type OrderEventType string

const (
	EventOrderCreated       OrderEventType = "order.created"
	EventOrderStatusChanged OrderEventType = "order.status_changed"
	EventOrderDeleted       OrderEventType = "order.deleted"
	EventOrdersCleared      OrderEventType = "orders.cleared"
)

// 注文の変化を外部へ流すイベント。
type OrderEvent struct {
	Type           OrderEventType `json:"type"`
	OrderID        string         `json:"orderId,omitempty"`
	OrderNumber    string         `json:"orderNumber,omitempty"`
	Status         string         `json:"status,omitempty"`
	PreviousStatus string         `json:"previousStatus,omitempty"`
	OccurredAt     time.Time      `json:"occurredAt"`
}

// 配信はベストエフォート。失敗しても呼び出し元の処理は成功扱い。
type OrderEventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// 正規化したUUID文字列を返す。形式不正ならfalse。
func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
