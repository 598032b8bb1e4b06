package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/domain/ordernumber"
	"backoffice/internal/infra/db/dbtest"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// release が閉じられるまで書き込みを止められる writer
type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	err     error
	closed  bool
	started chan struct{}
	release chan struct{}
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{started: make(chan struct{}, 16)}
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.started <- struct{}{}
	if w.release != nil {
		select {
		case <-w.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := newFakeWriter()
	p := newKafkaPublisher(w, discardLogger(), 8, time.Second)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), usecase.OrderEvent{
		Type:           usecase.EventOrderStatusChanged,
		OrderID:        "order-1",
		OrderNumber:    "ORD-ABC-1234",
		Status:         "Ready",
		PreviousStatus: "Preparing",
		OccurredAt:     at,
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	msgs := w.written()
	require.Len(t, msgs, 1)
	assert.True(t, w.closed)

	msg := msgs[0]
	assert.Equal(t, "order-1", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.status_changed", string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order.status_changed", body["type"])
	assert.Equal(t, "Ready", body["status"])
	assert.Equal(t, "Preparing", body["previousStatus"])
}

func TestKafkaPublisher_PublishDoesNotWaitForWriter(t *testing.T) {
	w := newFakeWriter()
	w.release = make(chan struct{})
	p := newKafkaPublisher(w, discardLogger(), 8, time.Second)

	start := time.Now()
	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "a"}))
	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "b"}))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Empty(t, w.written())

	close(w.release)
	require.NoError(t, p.Close())
	assert.Len(t, w.written(), 2)
}

func TestKafkaPublisher_WriteErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	w := newFakeWriter()
	w.err = errors.New("no brokers")
	p := newKafkaPublisher(w, logger, 8, time.Second)

	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrdersCleared}))
	require.NoError(t, p.Close())

	assert.Contains(t, buf.String(), "kafka: write order event failed")
	assert.Contains(t, buf.String(), "orders.cleared")
	assert.Contains(t, buf.String(), "no brokers")
}

func TestKafkaPublisher_QueueFullDropsEvent(t *testing.T) {
	w := newFakeWriter()
	w.release = make(chan struct{})
	p := newKafkaPublisher(w, discardLogger(), 1, time.Second)

	// 1件目は送信中で止まり、2件目でキューが埋まる
	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "a"}))
	<-w.started
	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "b"}))

	err := p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "c"})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(w.release)
	require.NoError(t, p.Close())
	assert.Len(t, w.written(), 2)
}

func TestKafkaPublisher_CloseGivesUpOnStuckBroker(t *testing.T) {
	w := newFakeWriter()
	w.release = make(chan struct{}) // 閉じない
	p := newKafkaPublisher(w, discardLogger(), 8, 50*time.Millisecond)

	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "a"}))
	require.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "b"}))

	start := time.Now()
	require.NoError(t, p.Close())
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, w.written())
	assert.True(t, w.closed)

	assert.ErrorIs(t, p.Publish(context.Background(), usecase.OrderEvent{Type: usecase.EventOrderCreated}), ErrClosed)
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_PublishIgnoresCanceledRequest(t *testing.T) {
	w := newFakeWriter()
	p := newKafkaPublisher(w, discardLogger(), 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Publish(ctx, usecase.OrderEvent{Type: usecase.EventOrderCreated, OrderID: "x"}))
	require.NoError(t, p.Close())
	assert.Len(t, w.written(), 1)
}

// ブローカーが応答しなくても注文作成は待たされない
func TestKafkaPublisher_SlowBrokerDoesNotDelayOrderCreate(t *testing.T) {
	gdb := dbtest.New(t)
	w := newFakeWriter()
	w.release = make(chan struct{})
	p := newKafkaPublisher(w, discardLogger(), 8, 50*time.Millisecond)
	t.Cleanup(func() { _ = p.Close() })

	orderUC := usecase.NewOrderUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		infraRepo.NewOrderGormRepository(gdb),
		infraRepo.NewMenuItemGormRepository(gdb),
		infraRepo.NewAuditLogGormRepository(gdb),
		p,
		ordernumber.NewGenerator(),
		usecase.UUIDGenerator{},
		usecase.SystemClock{},
	)

	table := 4
	price := decimal.RequireFromString("280")
	start := time.Now()
	out, err := orderUC.Create(context.Background(), usecase.CreateOrderInput{
		CustomerName: "Priya",
		TableNumber:  &table,
		Items:        []usecase.OrderLineInput{{MenuItemID: uuid.NewString(), Quantity: 2, Price: &price}},
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "560", out.TotalAmount.String())

	// イベントは送信待ちのまま
	<-w.started
	assert.Empty(t, w.written())
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher(config.Config{}, discardLogger())
	_, isNop := p.(NopPublisher)
	assert.True(t, isNop)
	assert.NoError(t, p.Publish(context.Background(), usecase.OrderEvent{}))

	p = NewPublisher(config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaOrderTopic: "order_events"}, discardLogger())
	kp, isKafka := p.(*KafkaPublisher)
	require.True(t, isKafka)
	kw, ok := kp.w.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "order_events", kw.Topic)
	assert.Equal(t, batchTimeout, kw.BatchTimeout)
	assert.NoError(t, p.Close())
}
