package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/fadinha/embroidery_shop/internal/es"
	"github.com/fadinha/embroidery_shop/internal/imagestore"
	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/models"
	"github.com/fadinha/embroidery_shop/internal/repo"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Images *imagestore.Store
	ES     *elasticsearch.Client
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageName   string
	ImageData   []byte
}

func (s *CatalogService) Create(ctx context.Context, sess models.Session, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	var imagePath string
	if len(in.ImageData) > 0 {
		path, err := s.Images.Store(in.ImageName, in.ImageData)
		if err != nil {
			l.Error("create_product_failed", "reason", "image_store", "error", err)
			return nil, fmt.Errorf("%w: image store", ErrStorage)
		}
		imagePath = path
	}

	prod := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImagePath:   imagePath,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		l.Error("create_product_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: product insert", ErrStorage)
	}

	es.IndexProduct(ctx, s.ES, &prod)
	l.Info("create_product_success", "product_id", prod.ID, "name", prod.Name)
	return &prod, nil
}

// Update replaces name, description, price and stock. The stored image is
// kept when no new one is uploaded; when one is, the old file stays on disk
// (only the path is overwritten).
func (s *CatalogService) Update(ctx context.Context, sess models.Session, id uint, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update")

	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		l.Error("update_product_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: product lookup", ErrStorage)
	}

	prod.Name = in.Name
	prod.Description = in.Description
	prod.Price = in.Price
	prod.Stock = in.Stock

	if len(in.ImageData) > 0 {
		path, err := s.Images.Store(in.ImageName, in.ImageData)
		if err != nil {
			l.Error("update_product_failed", "reason", "image_store", "error", err)
			return nil, fmt.Errorf("%w: image store", ErrStorage)
		}
		prod.ImagePath = path
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		l.Error("update_product_failed", "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: product update", ErrStorage)
	}

	es.IndexProduct(ctx, s.ES, prod)
	l.Info("update_product_success", "product_id", prod.ID)
	return prod, nil
}

func (s *CatalogService) Delete(ctx context.Context, sess models.Session, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete")

	if err := requireAdmin(sess); err != nil {
		return err
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		l.Error("delete_product_failed", "reason", "db_error", "error", err)
		return fmt.Errorf("%w: product lookup", ErrStorage)
	}

	s.Images.Delete(ctx, prod.ImagePath)

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		l.Error("delete_product_failed", "reason", "db_error", "error", err)
		return fmt.Errorf("%w: product delete", ErrStorage)
	}

	es.DeleteProduct(ctx, s.ES, id)
	l.Info("delete_product_success", "product_id", id)
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_products_failed", "error", err)
		return nil, fmt.Errorf("%w: product list", ErrStorage)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		logging.FromContext(ctx).Error("get_product_failed", "error", err)
		return nil, fmt.Errorf("%w: product lookup", ErrStorage)
	}
	return prod, nil
}

func validateProduct(in ProductInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}
