package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
	"github.com/fadinha/embroidery_shop/internal/service"
)

type OrderHandler struct {
	Orders   *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	in := service.OrderInput{
		ProductName: c.FormValue("product_name"),
		Details:     c.FormValue("details"),
	}

	if v := c.FormValue("quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "quantity is not an integer")
		}
		in.Quantity = qty
	}

	name, data, err := formFile(c, "reference_image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read reference image upload")
	}
	in.ReferenceName = name
	in.ReferenceData = data

	sess := authmw.SessionFromContext(c)
	order, err := h.Orders.Place(c.Request().Context(), sess, in)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "order_events", order.UserEmail, map[string]interface{}{
		"type":     "order_placed",
		"order_id": order.ID,
		"product":  order.ProductName,
		"quantity": order.Quantity,
	})

	return c.JSON(http.StatusCreated, order)
}

// ListProducts serves the order form's product picker.
func (h *OrderHandler) ListProducts(c echo.Context) error {
	items, err := h.Orders.ListProducts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	sess := authmw.SessionFromContext(c)
	orders, err := h.Orders.ListMine(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}
