package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/fadinha/embroidery_shop/internal/config"
	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/models"
)

const ProductIndex = "products"

// NewClient returns nil when no ES_URL is configured; callers treat a nil
// client as "search falls back to the database".
func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	if cfg.ES_URL == "" {
		return nil, nil
	}

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// IndexProduct mirrors a catalog row into the product index. Failures are
// logged, not returned: search lags behind the store rather than failing a
// write to it.
func IndexProduct(ctx context.Context, client *elasticsearch.Client, prod *models.Product) {
	if client == nil {
		return
	}
	l := logging.FromContext(ctx)

	data, err := json.Marshal(prod)
	if err != nil {
		l.Warn("es_index_failed", "product_id", prod.ID, "error", err)
		return
	}
	res, err := client.Index(
		ProductIndex,
		bytes.NewReader(data),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(prod.ID), 10)),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		l.Warn("es_index_failed", "product_id", prod.ID, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		l.Warn("es_index_failed", "product_id", prod.ID, "status", res.Status())
	}
}

func DeleteProduct(ctx context.Context, client *elasticsearch.Client, id uint) {
	if client == nil {
		return
	}
	l := logging.FromContext(ctx)

	res, err := client.Delete(
		ProductIndex,
		strconv.FormatUint(uint64(id), 10),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		l.Warn("es_delete_failed", "product_id", id, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		l.Warn("es_delete_failed", "product_id", id, "status", res.Status())
	}
}
