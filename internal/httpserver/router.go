package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/backend/internal/middleware"
)

type Deps struct {
	UserHandler     *UserHTTP
	WishlistHandler *WishlistHTTP
	OrderHandler    *OrderHTTP
	ProductHandler  *ProductHTTP
	SearchHandler   *SearchHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewAuth(d.JWTSecret)

	users := e.Group("/users")
	users.POST("", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	users.GET("/profile", d.UserHandler.GetProfile, authMw.RequireAuth)
	users.PUT("/profile", d.UserHandler.UpdateProfile, authMw.RequireAuth)

	wishlist := users.Group("/wishlist", authMw.RequireAuth)
	wishlist.GET("", d.WishlistHandler.List)
	wishlist.POST("/:id", d.WishlistHandler.Add)
	wishlist.DELETE("/:id", d.WishlistHandler.Remove)

	users.GET("", d.UserHandler.ListUsers, authMw.RequireAuth, authMw.RequireAdmin)
	users.GET("/:id", d.UserHandler.GetUser, authMw.RequireAuth, authMw.RequireAdmin)
	users.PUT("/:id", d.UserHandler.UpdateUser, authMw.RequireAuth, authMw.RequireAdmin)
	users.DELETE("/:id", d.UserHandler.DeleteUser, authMw.RequireAuth, authMw.RequireAdmin)

	orders := e.Group("/orders", authMw.RequireAuth)
	orders.POST("", d.OrderHandler.Create)
	orders.GET("/mine", d.OrderHandler.ListMine)
	orders.GET("/:id", d.OrderHandler.Get)
	orders.PUT("/:id/pay", d.OrderHandler.Pay)
	orders.PUT("/:id/deliver", d.OrderHandler.Deliver)
	orders.GET("", d.OrderHandler.ListAll, authMw.RequireAdmin)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.Get)
}
