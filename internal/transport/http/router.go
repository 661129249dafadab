package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fadinha/embroidery_shop/internal/handlers"
	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	RosterHandler  *handlers.RosterHandler
	SearchHandler  *handlers.SearchHandler
	AuthMW         *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)

	orders := v1.Group("/orders", d.AuthMW.RequireLogin)
	orders.GET("", d.OrderHandler.ListMine)
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("/products", d.OrderHandler.ListProducts)

	admin := v1.Group("/admin", d.AuthMW.RequireAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.GET("/users", d.RosterHandler.ListUsers)
	admin.POST("/users", d.RosterHandler.CreateUser)
}
