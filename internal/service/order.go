package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/imagestore"
	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/models"
	"github.com/fadinha/embroidery_shop/internal/repo"
)

// fallbackQuantityCap is the order form's bound when a product reports zero
// stock; the legacy UI allowed up to 100 units in that case.
const fallbackQuantityCap = 100

type OrderService struct {
	Repo    *repo.GormRepo
	Images  *imagestore.Store
	Catalog *CatalogService
}

type OrderInput struct {
	ProductName   string
	Quantity      int
	Details       string
	ReferenceName string
	ReferenceData []byte
}

// Place records a customization order. Stock acts as a ceiling only: it is
// checked, never decremented, and two concurrent orders can both pass the
// check.
func (s *OrderService) Place(ctx context.Context, sess models.Session, in OrderInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place")

	if err := requireLogin(sess); err != nil {
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	prod, err := s.Repo.GetProductByName(ctx, in.ProductName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown product %q", ErrValidation, in.ProductName)
		}
		l.Error("place_order_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: product lookup", ErrStorage)
	}

	limit := fallbackQuantityCap
	if prod.Stock > 0 {
		limit = prod.Stock
	}
	if in.Quantity > limit {
		return nil, fmt.Errorf("%w: quantity exceeds available stock", ErrValidation)
	}

	var refPath string
	if len(in.ReferenceData) > 0 {
		path, err := s.Images.Store(in.ReferenceName, in.ReferenceData)
		if err != nil {
			l.Error("place_order_failed", "reason", "image_store", "error", err)
			return nil, fmt.Errorf("%w: reference image store", ErrStorage)
		}
		refPath = path
	}

	order := models.Order{
		UserEmail:          sess.UserEmail,
		ProductName:        prod.Name,
		Quantity:           in.Quantity,
		Details:            in.Details,
		ReferenceImagePath: refPath,
		Status:             models.StatusPending,
	}
	if err := s.Repo.CreateOrder(ctx, &order); err != nil {
		l.Error("place_order_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: order insert", ErrStorage)
	}

	l.Info("place_order_success", "order_id", order.ID, "product", order.ProductName)
	return &order, nil
}

// ListProducts feeds the order form; it is the catalog read path.
func (s *OrderService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Catalog.List(ctx)
}

func (s *OrderService) ListMine(ctx context.Context, sess models.Session) ([]models.Order, error) {
	if err := requireLogin(sess); err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrders(ctx, sess.UserEmail)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_failed", "error", err)
		return nil, fmt.Errorf("%w: order list", ErrStorage)
	}
	return orders, nil
}
