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
	"github.com/storefront/backend/internal/service"
)

type WishlistHTTP struct {
	Svc      *service.WishlistService
	Producer *events.Producer
}

func (h *WishlistHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicWishlistEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "error", err)
	}
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")
	ident, _ := middleware.IdentityFromContext(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product or User not Found")
	}

	if err := h.Svc.Add(ctx, ident, productID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product or User not Found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("wishlist_add_rejected", "status", 400, "reason", "duplicate")
			return echo.NewHTTPError(http.StatusBadRequest, "Product already in wishlist")
		default:
			l.Error("wishlist_add_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, ident.UserID.Hex(), map[string]any{
		"type":      "wishlist_entry_added",
		"userID":    ident.UserID.Hex(),
		"productID": productID.Hex(),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "Product added to wishlist"})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")
	ident, _ := middleware.IdentityFromContext(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product or User not Found")
	}

	if err := h.Svc.Remove(ctx, ident, productID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product or User not Found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("wishlist_remove_rejected", "status", 400, "reason", "not in wishlist")
			return echo.NewHTTPError(http.StatusBadRequest, "Product does not exist in wishlist")
		default:
			l.Error("wishlist_remove_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, ident.UserID.Hex(), map[string]any{
		"type":      "wishlist_entry_removed",
		"userID":    ident.UserID.Hex(),
		"productID": productID.Hex(),
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Product removed from wishlist"})
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ident, _ := middleware.IdentityFromContext(c)

	entries, err := h.Svc.List(c.Request().Context(), ident)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, entries)
}
