package handlers

import (
	"context"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fadinha/embroidery_shop/internal/logging"
	"github.com/fadinha/embroidery_shop/internal/mykafka"
)

func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_failed", "topic", topic, "error", err)
	}
}

// formFile reads an optional multipart upload; a missing part is not an
// error, it just means no image was attached.
func formFile(c echo.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
