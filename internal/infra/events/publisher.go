package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/usecase"

	"github.com/segmentio/kafka-go"
)

const (
	writeTimeout = 5 * time.Second
	batchTimeout = 10 * time.Millisecond
	drainTimeout = 10 * time.Second
	queueSize    = 256
)

var (
	ErrQueueFull = errors.New("kafka: event queue is full")
	ErrClosed    = errors.New("kafka: publisher is closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// 注文イベントをKafkaへ流す。キーは注文IDで、同じ注文のイベントは同じパーティションに入る。
//
// Publishはキューに積むだけで、送信はバックグラウンドのgoroutineが行う。
type KafkaPublisher struct {
	w      messageWriter
	logger *slog.Logger

	queue chan kafka.Message
	done  chan struct{}

	// Close後の送信中断用
	ctx    context.Context
	cancel context.CancelFunc
	drain  time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
	}
	return newKafkaPublisher(w, logger, queueSize, drainTimeout)
}

func newKafkaPublisher(w messageWriter, logger *slog.Logger, size int, drain time.Duration) *KafkaPublisher {
	ctx, cancel := context.WithCancel(context.Background())
	p := &KafkaPublisher{
		w:      w,
		logger: logger,
		queue:  make(chan kafka.Message, size),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		drain:  drain,
	}
	go p.run()
	return p
}

func (p *KafkaPublisher) Publish(_ context.Context, ev usecase.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: data,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	//満杯なら待たずに捨てる
	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w: drop %s", ErrQueueFull, ev.Type)
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		wctx, cancel := context.WithTimeout(p.ctx, writeTimeout)
		err := p.w.WriteMessages(wctx, msg)
		cancel()
		if err != nil {
			p.logger.Warn("kafka: write order event failed",
				"event_type", eventType(msg),
				"order_id", string(msg.Key),
				"error", err,
			)
		}
	}
}

func eventType(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

// 積まれたイベントを送り切ってから閉じる。drainを過ぎたら残りの送信は中断する。
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	timer := time.NewTimer(p.drain)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.logger.Warn("kafka: drain timed out, dropping queued order events", "queued", len(p.queue))
		p.cancel()
		<-p.done
	}
	p.cancel()
	return p.w.Close()
}

// ブローカー未設定時に使う
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, usecase.OrderEvent) error { return nil }
func (NopPublisher) Close() error                                      { return nil }

type Publisher interface {
	usecase.OrderEventPublisher
	Close() error
}

func NewPublisher(cfg config.Config, logger *slog.Logger) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
}
