package handler

import (
	"net/http"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderLineRequest struct {
	MenuItem string           `json:"menuItem"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// totalAmount は受け取らない（サーバーで計算）
type CreateOrderRequest struct {
	Items        []OrderLineRequest `json:"items"`
	CustomerName string             `json:"customerName"`
	TableNumber  *int               `json:"tableNumber"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

// /orders のAPI
type OrderHandler struct {
	orders *usecase.OrderUsecase
	sales  *usecase.SalesUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, sales *usecase.SalesUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, sales: sales}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/analytics/top-sellers", h.topSellers)
	g.GET("/orders/:id", h.detail)
	g.GET("/orders/:id/history", h.history)
	g.POST("/orders", h.create)
	g.PATCH("/orders/:id/status", h.updateStatus)
	g.DELETE("/orders/:id", h.delete)
	g.DELETE("/orders/clear/all", h.clearAll)
}

func (h *OrderHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", usecase.DefaultPage)
	if err != nil {
		return badRequest(c, "Invalid page")
	}
	limit, err := queryInt(c, "limit", usecase.DefaultLimit)
	if err != nil {
		return badRequest(c, "Invalid limit")
	}

	out, err := h.orders.List(c.Request().Context(), usecase.ListOrdersInput{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       out.Items,
		Pagination: newPagination(out.Page, out.Limit, out.Total),
	})
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, out, "")
}

func (h *OrderHandler) history(c echo.Context) error {
	out, err := h.orders.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, out, "")
}

func (h *OrderHandler) create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.OrderLineInput{
			MenuItemID: it.MenuItem,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}

	out, err := h.orders.Create(c.Request().Context(), usecase.CreateOrderInput{
		CustomerName: req.CustomerName,
		TableNumber:  req.TableNumber,
		Items:        lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, out, "Order created successfully")
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	out, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, out, "Order status updated to "+string(out.Status))
}

func (h *OrderHandler) delete(c echo.Context) error {
	if err := h.orders.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, nil, "Order deleted successfully")
}

func (h *OrderHandler) topSellers(c echo.Context) error {
	out, err := h.sales.TopSellers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, out, "")
}

func (h *OrderHandler) clearAll(c echo.Context) error {
	if _, err := h.orders.ClearAll(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, nil, "All orders deleted successfully")
}
