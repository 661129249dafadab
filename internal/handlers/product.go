package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authmw "github.com/fadinha/embroidery_shop/internal/middleware/auth"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
	"github.com/fadinha/embroidery_shop/internal/service"
)

type ProductHandler struct {
	Catalog  *service.CatalogService
	Producer *mykafka.Producer
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	items, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	prod, err := h.Catalog.Get(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	in, err := bindProductForm(c)
	if err != nil {
		return err
	}

	sess := authmw.SessionFromContext(c)
	prod, err := h.Catalog.Create(c.Request().Context(), sess, in)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "product_events", strconv.FormatUint(uint64(prod.ID), 10), map[string]interface{}{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	in, err := bindProductForm(c)
	if err != nil {
		return err
	}

	sess := authmw.SessionFromContext(c)
	prod, err := h.Catalog.Update(c.Request().Context(), sess, uint(id), in)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "product_events", c.Param("id"), map[string]interface{}{
		"type":       "product_updated",
		"product_id": prod.ID,
		"name":       prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	sess := authmw.SessionFromContext(c)
	if err := h.Catalog.Delete(c.Request().Context(), sess, uint(id)); err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "product_events", c.Param("id"), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func bindProductForm(c echo.Context) (service.ProductInput, error) {
	var in service.ProductInput

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
		}
		in.Price = price
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "stock is not an integer")
		}
		in.Stock = stock
	}

	name, data, err := formFile(c, "image")
	if err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "cannot read image upload")
	}
	in.ImageName = name
	in.ImageData = data

	return in, nil
}
