package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	invoiceApp "github.com/davicafu/facturalab/internal/invoice/application"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
)

// QueryHandler expone la proyección de lectura sobre facturas ya persistidas.
type QueryHandler struct {
	invoices *invoiceApp.InvoiceService
}

func NewQueryHandler(invoices *invoiceApp.InvoiceService) *QueryHandler {
	return &QueryHandler{invoices: invoices}
}

// GetInvoice endpoint GET /invoices/:id
func (h *QueryHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}

	invoice, err := h.invoices.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, invoiceDomain.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceByOrder endpoint GET /orders/:id/invoice
func (h *QueryHandler) GetInvoiceByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	invoice, err := h.invoices.GetInvoiceByOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, invoiceDomain.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoice)
}
