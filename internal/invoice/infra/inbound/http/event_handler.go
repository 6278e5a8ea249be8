package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	addressApp "github.com/davicafu/facturalab/internal/address/application"
	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceApp "github.com/davicafu/facturalab/internal/invoice/application"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	userApp "github.com/davicafu/facturalab/internal/user/application"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
	"github.com/davicafu/facturalab/pkg/metrics"
)

// ErrTopicMismatch indica que el topic del envelope no coincide con el topic
// al que está ligada la ruta. No se ejecuta ningún efecto.
var ErrTopicMismatch = errors.New("event topic does not match route")

// EventHandler encapsula los endpoints HTTP por los que el broker entrega
// eventos, uno por topic, más el descubrimiento de suscripciones.
type EventHandler struct {
	invoices   *invoiceApp.InvoiceService
	users      *userApp.UserService
	vendor     *addressApp.VendorAddressService
	pubsubName string
	log        *zap.Logger
}

func NewEventHandler(
	invoices *invoiceApp.InvoiceService,
	users *userApp.UserService,
	vendor *addressApp.VendorAddressService,
	pubsubName string,
	log *zap.Logger,
) *EventHandler {
	return &EventHandler{
		invoices:   invoices,
		users:      users,
		vendor:     vendor,
		pubsubName: pubsubName,
		log:        log,
	}
}

// Subscriptions devuelve la lista fija de suscripciones que el broker debe
// registrar. Es configuración estática, no se computa de ningún estado.
func (h *EventHandler) Subscriptions() []sharedEvents.Subscription {
	return []sharedEvents.Subscription{
		{PubsubName: h.pubsubName, Topic: sharedEvents.TopicOrderValidationSucceeded, Route: "/on-discount-validation-succeded"},
		{PubsubName: h.pubsubName, Topic: sharedEvents.TopicVendorAddressCreated, Route: "/on-vendor-address-creation-event"},
		{PubsubName: h.pubsubName, Topic: sharedEvents.TopicUserCreated, Route: "/on-user-creation-event"},
		{PubsubName: h.pubsubName, Topic: sharedEvents.TopicUserAddressCreated, Route: "/on-user-address-creation-event"},
		{PubsubName: h.pubsubName, Topic: sharedEvents.TopicUserAddressArchived, Route: "/on-user-address-archived-event"},
	}
}

// ListSubscriptions endpoint GET /dapr/subscribe
func (h *EventHandler) ListSubscriptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.Subscriptions())
}

// ---------------- Handlers por topic ----------------

// OnOrderValidationSucceeded endpoint POST /on-discount-validation-succeded
func (h *EventHandler) OnOrderValidationSucceeded(c *gin.Context) {
	h.handle(c, sharedEvents.TopicOrderValidationSucceeded, func(env sharedEvents.Envelope) error {
		order, err := sharedEvents.DecodeOrderValidationSucceeded(env.Data)
		if err != nil {
			return err
		}
		_, err = h.invoices.CreateFromOrder(c.Request.Context(), order)
		return err
	})
}

// OnVendorAddressCreated endpoint POST /on-vendor-address-creation-event
func (h *EventHandler) OnVendorAddressCreated(c *gin.Context) {
	h.handle(c, sharedEvents.TopicVendorAddressCreated, func(env sharedEvents.Envelope) error {
		evt, err := sharedEvents.DecodeVendorAddressCreated(env.Data)
		if err != nil {
			return err
		}
		return h.vendor.Replace(c.Request.Context(), addressDomain.VendorAddress{
			ID:          evt.ID,
			Street1:     evt.Street1,
			Street2:     evt.Street2,
			City:        evt.City,
			PostalCode:  evt.PostalCode,
			Country:     evt.Country,
			CompanyName: evt.CompanyName,
		})
	})
}

// OnUserCreated endpoint POST /on-user-creation-event
func (h *EventHandler) OnUserCreated(c *gin.Context) {
	h.handle(c, sharedEvents.TopicUserCreated, func(env sharedEvents.Envelope) error {
		evt, err := sharedEvents.DecodeUserCreated(env.Data)
		if err != nil {
			return err
		}
		return h.users.CreateUser(c.Request.Context(), evt.ID, evt.FirstName, evt.LastName)
	})
}

// OnUserAddressCreated endpoint POST /on-user-address-creation-event
func (h *EventHandler) OnUserAddressCreated(c *gin.Context) {
	h.handle(c, sharedEvents.TopicUserAddressCreated, func(env sharedEvents.Envelope) error {
		evt, err := sharedEvents.DecodeUserAddressCreated(env.Data)
		if err != nil {
			return err
		}
		return h.users.AddAddress(c.Request.Context(), userDomain.UserAddress{
			ID:          evt.ID,
			Street1:     evt.Street1,
			Street2:     evt.Street2,
			City:        evt.City,
			PostalCode:  evt.PostalCode,
			Country:     evt.Country,
			CompanyName: evt.CompanyName,
			UserID:      evt.UserID,
		})
	})
}

// OnUserAddressArchived endpoint POST /on-user-address-archived-event
func (h *EventHandler) OnUserAddressArchived(c *gin.Context) {
	h.handle(c, sharedEvents.TopicUserAddressArchived, func(env sharedEvents.Envelope) error {
		evt, err := sharedEvents.DecodeUserAddressArchived(env.Data)
		if err != nil {
			return err
		}
		return h.users.ArchiveAddress(c.Request.Context(), evt.UserID, evt.ID)
	})
}

// handle ejecuta el pipeline común de una entrega: bind del envelope,
// verificación del topic ligado a la ruta y procesamiento. Cualquier fallo
// colapsa en un 500 genérico sin cuerpo; el broker decide la reentrega.
func (h *EventHandler) handle(c *gin.Context, boundTopic string, process func(sharedEvents.Envelope) error) {
	start := time.Now()

	var env sharedEvents.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		h.fail(c, boundTopic, fmt.Errorf("%w: %v", sharedEvents.ErrDecode, err))
		return
	}

	if env.Topic != boundTopic {
		h.fail(c, boundTopic, fmt.Errorf("%w: got %q", ErrTopicMismatch, env.Topic))
		return
	}

	if err := process(env); err != nil {
		h.fail(c, boundTopic, err)
		return
	}

	metrics.EventsProcessed.WithLabelValues(boundTopic).Inc()
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, sharedEvents.TopicEventResponse{Status: 0})
}

func (h *EventHandler) fail(c *gin.Context, topic string, err error) {
	metrics.EventsFailed.WithLabelValues(topic).Inc()
	h.log.Warn("Failed to process event",
		zap.String("topic", topic),
		zap.Error(err),
	)
	c.Status(http.StatusInternalServerError)
}
