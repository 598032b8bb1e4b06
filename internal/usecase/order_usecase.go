package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	"backoffice/internal/logging"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文番号が衝突したときの再採番の上限
const maxOrderNumberAttempts = 3

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type OrderUsecase struct {
	tx      repo.TransactionManager
	orders  repo.OrderRepository
	menu    repo.MenuItemRepository
	audit   repo.AuditLogRepository
	events  OrderEventPublisher
	numbers OrderNumberGenerator
	ids     IDGenerator
	clock   Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	menu repo.MenuItemRepository,
	audit repo.AuditLogRepository,
	events OrderEventPublisher,
	numbers OrderNumberGenerator,
	ids IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:      tx,
		orders:  orders,
		menu:    menu,
		audit:   audit,
		events:  events,
		numbers: numbers,
		ids:     ids,
		clock:   clock,
	}
}

// POST /orders の明細
type OrderLineInput struct {
	MenuItemID string
	Quantity   int
	Price      *decimal.Decimal
}

type CreateOrderInput struct {
	CustomerName string
	TableNumber  *int
	Items        []OrderLineInput
}

type ListOrdersInput struct {
	Page   int
	Limit  int
	Status string
}

// 明細に埋め込むメニュー情報。削除済みならnull。
type MenuItemSummary struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Category        model.Category  `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	PreparationTime int             `json:"preparationTime"`
}

type OrderItemOutput struct {
	MenuItem   *MenuItemSummary `json:"menuItem"`
	MenuItemID string           `json:"menuItemId"`
	Quantity   int              `json:"quantity"`
	Price      decimal.Decimal  `json:"price"`
}

type OrderOutput struct {
	ID           string            `json:"_id"`
	OrderNumber  string            `json:"orderNumber"`
	Items        []OrderItemOutput `json:"items"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Status       model.OrderStatus `json:"status"`
	CustomerName string            `json:"customerName"`
	TableNumber  int               `json:"tableNumber"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type OrderListOutput struct {
	Items []OrderOutput
	Total int64
	Page  int
	Limit int
}

// ステータス履歴の1件
type StatusChangeOutput struct {
	Action    model.AuditAction `json:"action"`
	From      string            `json:"from,omitempty"`
	To        string            `json:"to"`
	ChangedAt time.Time         `json:"changedAt"`
}

func validateCreateOrder(in CreateOrderInput) []string {
	var errs []string

	if len(in.Items) == 0 {
		errs = append(errs, "Order must have at least one item")
	}
	total := decimal.Zero
	for i, it := range in.Items {
		prefix := fmt.Sprintf("Item %d: ", i+1)
		if strings.TrimSpace(it.MenuItemID) == "" {
			errs = append(errs, prefix+"Menu item is required")
		} else if _, ok := parseID(it.MenuItemID); !ok {
			errs = append(errs, prefix+"Invalid menu item ID")
		}
		if it.Quantity < 1 {
			errs = append(errs, prefix+"Quantity must be at least 1")
		}
		if it.Price == nil {
			errs = append(errs, prefix+"Price is required")
		} else {
			errs = append(errs, priceErrors(prefix, *it.Price)...)
			if it.Quantity > 0 {
				total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			}
		}
	}
	if total.GreaterThanOrEqual(model.MaxTotalAmount) {
		errs = append(errs, "Order total must be less than "+model.MaxTotalAmount.String())
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		errs = append(errs, "Customer name is required")
	}
	if in.TableNumber == nil {
		errs = append(errs, "Table number is required")
	} else if *in.TableNumber < 1 {
		errs = append(errs, "Table number must be at least 1")
	}
	return errs
}

// 合計はサーバー側で計算する（クライアントのtotalAmountは使わない）
func (u *OrderUsecase) buildOrder(in CreateOrderInput) model.Order {
	now := u.clock.Now()

	items := make([]model.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		id, _ := parseID(it.MenuItemID)
		line := model.OrderItem{
			MenuItemID: id,
			Quantity:   it.Quantity,
			Price:      *it.Price,
		}
		total = total.Add(line.LineTotal())
		items = append(items, line)
	}

	return model.Order{
		ID:           u.ids.NewID(),
		OrderNumber:  u.numbers.Next(now),
		Items:        items,
		TotalAmount:  total,
		Status:       model.OrderStatusPending,
		CustomerName: strings.TrimSpace(in.CustomerName),
		TableNumber:  *in.TableNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if errs := validateCreateOrder(in); len(errs) > 0 {
		return OrderOutput{}, NewValidationError("Validation Error", errs...)
	}

	var created model.Order
	var err error
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order := u.buildOrder(in)
		err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			o, err := r.Orders().Create(ctx, order)
			if err != nil {
				return err
			}
			if err := r.AuditLogs().Create(ctx, statusAudit(model.AuditActionCreateOrder, o.ID, "", o.Status, o.CreatedAt)); err != nil {
				return err
			}
			created = o
			return nil
		})
		if !errors.Is(err, repo.ErrDuplicate) {
			break
		}
		logging.FromContext(ctx).Warn("order number collision", "order_number", order.OrderNumber, "attempt", attempt)
	}
	if err != nil {
		return OrderOutput{}, NewStoreError(err)
	}

	u.publish(ctx, OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     created.ID,
		OrderNumber: created.OrderNumber,
		Status:      string(created.Status),
		OccurredAt:  created.CreatedAt,
	})

	outs, err := u.enrich(ctx, []model.Order{created})
	if err != nil {
		return OrderOutput{}, err
	}
	return outs[0], nil
}

func (u *OrderUsecase) List(ctx context.Context, in ListOrdersInput) (OrderListOutput, error) {
	if in.Page < 1 {
		return OrderListOutput{}, NewValidationError("Invalid page")
	}
	if in.Limit < 1 || in.Limit > MaxLimit {
		return OrderListOutput{}, NewValidationError("Invalid limit")
	}

	orders, total, err := u.orders.List(ctx, repo.OrderListFilter{
		Page:   in.Page,
		Limit:  in.Limit,
		Status: strings.TrimSpace(in.Status),
	})
	if err != nil {
		return OrderListOutput{}, NewStoreError(err)
	}

	outs, err := u.enrich(ctx, orders)
	if err != nil {
		return OrderListOutput{}, err
	}
	return OrderListOutput{
		Items: outs,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (OrderOutput, error) {
	id, ok := parseID(orderID)
	if !ok {
		return OrderOutput{}, NewInvalidIDError("Invalid order ID")
	}

	o, err := u.orders.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewNotFoundError("Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewStoreError(err)
	}

	outs, err := u.enrich(ctx, []model.Order{o})
	if err != nil {
		return OrderOutput{}, err
	}
	return outs[0], nil
}

// 遷移の順序は問わない。ステータス更新と監査ログは同一Tx。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, status string) (OrderOutput, error) {
	newStatus := model.OrderStatus(strings.TrimSpace(status))
	if newStatus == "" {
		return OrderOutput{}, NewValidationError("Status is required")
	}
	if !newStatus.Valid() {
		return OrderOutput{}, NewValidationError("Invalid status. Must be one of: " + model.StatusList())
	}
	id, ok := parseID(orderID)
	if !ok {
		return OrderOutput{}, NewInvalidIDError("Invalid order ID")
	}

	var before, after model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before = o

		if err := r.Orders().UpdateStatus(ctx, id, newStatus); err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, statusAudit(model.AuditActionUpdateOrderStatus, id, o.Status, newStatus, u.clock.Now())); err != nil {
			return err
		}

		after, err = r.Orders().FindByID(ctx, id)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewNotFoundError("Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewStoreError(err)
	}

	u.publish(ctx, OrderEvent{
		Type:           EventOrderStatusChanged,
		OrderID:        after.ID,
		OrderNumber:    after.OrderNumber,
		Status:         string(after.Status),
		PreviousStatus: string(before.Status),
		OccurredAt:     u.clock.Now(),
	})

	outs, err := u.enrich(ctx, []model.Order{after})
	if err != nil {
		return OrderOutput{}, err
	}
	return outs[0], nil
}

func (u *OrderUsecase) History(ctx context.Context, orderID string) ([]StatusChangeOutput, error) {
	id, ok := parseID(orderID)
	if !ok {
		return nil, NewInvalidIDError("Invalid order ID")
	}

	if _, err := u.orders.FindByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFoundError("Order not found")
		}
		return nil, NewStoreError(err)
	}

	logs, err := u.audit.ListByResource(ctx, model.AuditResourceOrder, id)
	if err != nil {
		return nil, NewStoreError(err)
	}

	outs := make([]StatusChangeOutput, 0, len(logs))
	for _, l := range logs {
		outs = append(outs, StatusChangeOutput{
			Action:    l.Action,
			From:      statusFromJSON(l.BeforeJSON),
			To:        statusFromJSON(l.AfterJSON),
			ChangedAt: l.CreatedAt,
		})
	}
	return outs, nil
}

func (u *OrderUsecase) Delete(ctx context.Context, orderID string) error {
	id, ok := parseID(orderID)
	if !ok {
		return NewInvalidIDError("Invalid order ID")
	}

	var deleted model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		deleted = o
		if err := r.Orders().Delete(ctx, id); err != nil {
			return err
		}
		return r.AuditLogs().DeleteByResource(ctx, model.AuditResourceOrder, id)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("Order not found")
	}
	if err != nil {
		return NewStoreError(err)
	}

	u.publish(ctx, OrderEvent{
		Type:        EventOrderDeleted,
		OrderID:     deleted.ID,
		OrderNumber: deleted.OrderNumber,
		Status:      string(deleted.Status),
		OccurredAt:  u.clock.Now(),
	})
	return nil
}

// 全注文と注文の監査ログを消す。空でも成功。
func (u *OrderUsecase) ClearAll(ctx context.Context) (int64, error) {
	var n int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		deleted, err := r.Orders().DeleteAll(ctx)
		if err != nil {
			return err
		}
		n = deleted
		return r.AuditLogs().DeleteByResourceType(ctx, model.AuditResourceOrder)
	})
	if err != nil {
		return 0, NewStoreError(err)
	}

	u.publish(ctx, OrderEvent{Type: EventOrdersCleared, OccurredAt: u.clock.Now()})
	return n, nil
}

// 明細にメニュー情報を付ける。
func (u *OrderUsecase) enrich(ctx context.Context, orders []model.Order) ([]OrderOutput, error) {
	outs := make([]OrderOutput, 0, len(orders))
	if len(orders) == 0 {
		return outs, nil
	}

	items, err := u.menu.FindByIDs(ctx, model.MenuItemIDs(orders))
	if err != nil {
		return nil, NewStoreError(err)
	}
	menu := model.IndexMenuItems(items)

	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, menu))
	}
	return outs, nil
}

func toOrderOutput(o model.Order, menu map[string]model.MenuItem) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		line := OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
		if m, ok := menu[it.MenuItemID]; ok {
			line.MenuItem = &MenuItemSummary{
				ID:              m.ID,
				Name:            m.Name,
				Price:           m.Price,
				Category:        m.Category,
				ImageURL:        m.ImageURL,
				PreparationTime: m.PreparationTime,
			}
		}
		items = append(items, line)
	}

	return OrderOutput{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		CustomerName: o.CustomerName,
		TableNumber:  o.TableNumber,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func (u *OrderUsecase) publish(ctx context.Context, ev OrderEvent) {
	if err := u.events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish order event failed", "type", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}

type statusSnapshot struct {
	Status string `json:"status"`
}

func statusAudit(action model.AuditAction, orderID string, from, to model.OrderStatus, at time.Time) model.AuditLog {
	log := model.AuditLog{
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		AfterJSON:    marshalStatus(to),
		CreatedAt:    at,
	}
	if from != "" {
		log.BeforeJSON = marshalStatus(from)
	}
	return log
}

func marshalStatus(s model.OrderStatus) string {
	b, _ := json.Marshal(statusSnapshot{Status: string(s)})
	return string(b)
}

func statusFromJSON(raw string) string {
	if raw == "" {
		return ""
	}
	var s statusSnapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return ""
	}
	return s.Status
}
