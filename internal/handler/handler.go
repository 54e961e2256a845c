package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/messaging"
	"github.com/Meenakshi-1306/Tutedude/internal/notify"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/config"
	"github.com/Meenakshi-1306/Tutedude/pkg/jwtutil"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the marketplace API on top of a record store
type Handler struct {
	store     store.Store
	jwt       *jwtutil.JWTUtil
	mailer    notify.Mailer
	publisher messaging.Publisher

	market config.MarketplaceConfig
	mail   config.MailConfig
	topics config.KafkaConfig

	now func() time.Time
}

// New wires a Handler from its collaborators and the loaded configuration
func New(s store.Store, jwt *jwtutil.JWTUtil, mailer notify.Mailer, publisher messaging.Publisher, cfg *config.Config) *Handler {
	return &Handler{
		store:     s,
		jwt:       jwt,
		mailer:    mailer,
		publisher: publisher,
		market:    cfg.Marketplace,
		mail:      cfg.Mail,
		topics:    cfg.Kafka,
		now:       time.Now,
	}
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// internalError logs err and answers with a generic 500
func internalError(c echo.Context, msg string, err error) error {
	logger.FromContext(c).Error(msg, zap.Error(err))
	return fail(c, http.StatusInternalServerError, "Internal server error")
}

// storeError maps store lookups to 404 and everything else to 500
func storeError(c echo.Context, what string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, what+" not found")
	}
	return internalError(c, "Failed to load "+what, err)
}

// publish sends a domain event. Failures are logged and counted but never
// surface to the caller.
func (h *Handler) publish(ctx context.Context, log *zap.Logger, topic, key string, event any) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishEvent(ctx, topic, key, event); err != nil {
		log.Warn("Failed to publish event",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err))
		prometheus.EventPublishFailures.WithLabelValues(topic).Inc()
	}
}
