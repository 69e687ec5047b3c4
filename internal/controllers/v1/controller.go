package v1

import (
	"context"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/config"
	"github.com/grovesmith/backend/internal/events"
	"github.com/grovesmith/backend/internal/models"
	"github.com/grovesmith/backend/internal/trophy"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Controller serves the v1 API.
type Controller struct {
	Events       events.Publisher
	Formatter    trophy.Formatter
	DividendRate decimal.Decimal
}

// NewController returns the controller for the given configuration.
func NewController(cfg config.Config, publisher events.Publisher) (Controller, error) {
	formatter, err := trophy.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		return Controller{}, err
	}

	return Controller{
		Events:       publisher,
		Formatter:    formatter,
		DividendRate: cfg.Rate,
	}, nil
}

// RegisterRoutes registers all v1 routes on the group. The group must
// authenticate requests.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRoot)
		r.GET("", GetRoot)
	}

	co.RegisterMeRoutes(r.Group("/me"))
	co.RegisterRecipientRoutes(r.Group("/recipients"))
	co.RegisterCauseRoutes(r.Group("/causes"))
	co.RegisterThemeRoutes(r.Group("/themes"))
}

// db returns the database bound to the request context.
func db(c *gin.Context) *gorm.DB {
	return models.DB.WithContext(c.Request.Context())
}

// publish sends an event for a committed change. The change is already
// stored, failures are only logged.
func (co Controller) publish(c *gin.Context, event events.Event) {
	if co.Events == nil {
		return
	}

	// The request context ends with the response
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 10*time.Second)
	defer cancel()

	if err := co.Events.Publish(ctx, event); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Str("event", string(event.Type)).Err(err).Msg("could not publish event")
	}
}
