package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SteampunkGill/Docker-final-assignment/internal/config"
	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/middleware"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
}

func NewOrderHandler(checkout *usecase.CheckoutUsecase, orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

type OrderCreateRequest struct {
	CartIDs   []int64 `json:"cart_ids"`
	AddressID int64   `json:"address_id"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:orderNo", h.detail)
	g.POST("/:orderNo/pay", h.pay)
	g.POST("/:orderNo/cancel", h.cancel)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.checkout.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		UserID:    userID,
		CartIDs:   req.CartIDs,
		AddressID: req.AddressID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	in := usecase.ListOrdersInput{UserID: userID}

	// page (default 1)
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return badRequest(c, "invalid page")
		}
		in.Page = p
	}
	// size (default 10)
	if v := c.QueryParam("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s <= 0 {
			return badRequest(c, "invalid size")
		}
		in.Size = s
	}
	if v := c.QueryParam("status"); v != "" {
		st, ok := parseOrderStatus(v)
		if !ok {
			return badRequest(c, "invalid status")
		}
		in.Status = &st
	}

	out, err := h.orders.ListOrders(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.orders.GetOrderDetail(c.Request().Context(), userID, c.Param("orderNo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) pay(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.orders.MarkPaid(c.Request().Context(), userID, c.Param("orderNo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.orders.Cancel(c.Request().Context(), userID, c.Param("orderNo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// accepts the numeric code or the name, e.g. "1" or "PAID"
func parseOrderStatus(v string) (model.OrderStatus, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		st := model.OrderStatus(n)
		return st, st.Valid()
	}
	for st := model.OrderStatusCreated; st <= model.OrderStatusCanceled; st++ {
		if strings.EqualFold(st.String(), v) {
			return st, true
		}
	}
	return 0, false
}
