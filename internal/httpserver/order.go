package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/backend/internal/events"
	"github.com/storefront/backend/internal/logging"
	"github.com/storefront/backend/internal/middleware"
	"github.com/storefront/backend/internal/models"
	"github.com/storefront/backend/internal/service"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "error", err)
	}
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")
	ident, _ := middleware.IdentityFromContext(c)

	var req service.CreateOrderParams
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No order items")
	}

	order, err := h.Svc.Create(ctx, ident, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_rejected", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "No order items")
		}
		l.Error("create_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, order.ID.Hex(), map[string]any{
		"type":    "order_created",
		"orderID": order.ID.Hex(),
		"userID":  ident.UserID.Hex(),
		"total":   order.TotalPrice,
	})
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) Get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	detail, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHTTP) Pay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.pay")

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	var req models.PaymentResult
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.MarkPaid(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("mark_paid_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, order.ID.Hex(), map[string]any{
		"type":    "order_paid",
		"orderID": order.ID.Hex(),
	})
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Deliver(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.deliver")

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	order, err := h.Svc.MarkDelivered(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("mark_delivered_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, order.ID.Hex(), map[string]any{
		"type":    "order_delivered",
		"orderID": order.ID.Hex(),
	})
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ident, _ := middleware.IdentityFromContext(c)

	orders, err := h.Svc.ListMine(c.Request().Context(), ident)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) ListAll(c echo.Context) error {
	orders, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}
