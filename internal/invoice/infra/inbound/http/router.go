package http

import "github.com/gin-gonic/gin"

// RegisterEventRoutes registra el descubrimiento de suscripciones y una
// ruta POST por topic, cada una ligada estáticamente a su topic.
func RegisterEventRoutes(r *gin.Engine, handler *EventHandler) {
	r.GET("/dapr/subscribe", handler.ListSubscriptions)

	r.POST("/on-discount-validation-succeded", handler.OnOrderValidationSucceeded)
	r.POST("/on-vendor-address-creation-event", handler.OnVendorAddressCreated)
	r.POST("/on-user-creation-event", handler.OnUserCreated)
	r.POST("/on-user-address-creation-event", handler.OnUserAddressCreated)
	r.POST("/on-user-address-archived-event", handler.OnUserAddressArchived)
}

// RegisterQueryRoutes registra la proyección de lectura.
func RegisterQueryRoutes(r *gin.Engine, handler *QueryHandler) {
	r.GET("/invoices/:id", handler.GetInvoice)
	r.GET("/orders/:id/invoice", handler.GetInvoiceByOrder)
}
