package handler

import (
	"net/http"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type MenuItemRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	Price           *decimal.Decimal `json:"price"`
	Ingredients     []string         `json:"ingredients"`
	IsAvailable     *bool            `json:"isAvailable"`
	PreparationTime *int             `json:"preparationTime"`
	ImageURL        *string          `json:"imageUrl"`
}

func (r MenuItemRequest) toInput() usecase.MenuItemInput {
	return usecase.MenuItemInput{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Price:           r.Price,
		Ingredients:     r.Ingredients,
		IsAvailable:     r.IsAvailable,
		PreparationTime: r.PreparationTime,
		ImageURL:        r.ImageURL,
	}
}

// /menu のAPI
type MenuHandler struct {
	uc *usecase.MenuUsecase
}

func NewMenuHandler(uc *usecase.MenuUsecase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

func (h *MenuHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/menu", h.list)
	g.GET("/menu/search", h.search)
	g.GET("/menu/:id", h.detail)
	g.POST("/menu", h.create)
	g.PUT("/menu/:id", h.update)
	g.DELETE("/menu/:id", h.delete)
	g.PATCH("/menu/:id/availability", h.toggleAvailability)
	g.DELETE("/menu/clear/all", h.clearAll)
}

func (h *MenuHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", usecase.DefaultPage)
	if err != nil {
		return badRequest(c, "Invalid page")
	}
	limit, err := queryInt(c, "limit", usecase.DefaultLimit)
	if err != nil {
		return badRequest(c, "Invalid limit")
	}
	available, err := queryBool(c, "isAvailable")
	if err != nil {
		return badRequest(c, "Invalid isAvailable")
	}
	minPrice, err := queryDecimal(c, "minPrice")
	if err != nil {
		return badRequest(c, "Invalid minPrice")
	}
	maxPrice, err := queryDecimal(c, "maxPrice")
	if err != nil {
		return badRequest(c, "Invalid maxPrice")
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListMenuItemsInput{
		Page:        page,
		Limit:       limit,
		Category:    c.QueryParam("category"),
		IsAvailable: available,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
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

func (h *MenuHandler) search(c echo.Context) error {
	items, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	n := len(items)
	return c.JSON(http.StatusOK, Response{Success: true, Data: items, Count: &n})
}

func (h *MenuHandler) detail(c echo.Context) error {
	item, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, item, "")
}

func (h *MenuHandler) create(c echo.Context) error {
	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, item, "Menu item created successfully")
}

func (h *MenuHandler) update(c echo.Context) error {
	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, item, "Menu item updated successfully")
}

func (h *MenuHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, nil, "Menu item deleted successfully")
}

func (h *MenuHandler) toggleAvailability(c echo.Context) error {
	item, err := h.uc.ToggleAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	state := "unavailable"
	if item.IsAvailable {
		state = "available"
	}
	return respond(c, http.StatusOK, item, "Menu item is now "+state)
}

func (h *MenuHandler) clearAll(c echo.Context) error {
	if _, err := h.uc.ClearAll(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, nil, "All menu items deleted successfully")
}
