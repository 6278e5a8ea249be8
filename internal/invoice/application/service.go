package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	sharedBus "github.com/davicafu/facturalab/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/facturalab/internal/shared/infra/platform/cache"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// InvoiceService implementa el pipeline de síntesis de facturas:
// agregación de entidades, render, persistencia y publicación del evento
// de creación. Todo secuencial por petición; ningún efecto anterior se
// deshace si una etapa posterior falla.
type InvoiceService struct {
	invoices  invoiceDomain.InvoiceRepository
	users     userDomain.UserRepository
	vendor    addressDomain.VendorAddressRepository
	publisher sharedBus.Publisher
	analytics invoiceDomain.AnalyticsRecorder // opcional
	cache     sharedCache.Cache               // opcional
	log       *zap.Logger
}

func NewInvoiceService(
	invoices invoiceDomain.InvoiceRepository,
	users userDomain.UserRepository,
	vendor addressDomain.VendorAddressRepository,
	publisher sharedBus.Publisher,
	analytics invoiceDomain.AnalyticsRecorder,
	cache sharedCache.Cache,
	log *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		users:     users,
		vendor:    vendor,
		publisher: publisher,
		analytics: analytics,
		cache:     cache,
		log:       log,
	}
}

// CreateFromOrder procesa un evento de validación de pedido: agrega las tres
// entidades, sintetiza la factura, la persiste y publica el evento de
// creación. La reentrega del mismo pedido es idempotente: devuelve la
// factura existente sin volver a publicar.
func (s *InvoiceService) CreateFromOrder(ctx context.Context, order sharedEvents.OrderEventData) (*invoiceDomain.Invoice, error) {
	// --- Agregación: las tres búsquedas deben tener éxito ---
	_, userAddress, err := s.users.FindAddress(ctx, order.InvoiceAddressID)
	if err != nil {
		return nil, fmt.Errorf("resolve invoice address %s: %w", order.InvoiceAddressID, err)
	}

	vendorAddress, err := s.vendor.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve vendor address: %w", err)
	}

	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", order.UserID, err)
	}

	// --- Síntesis ---
	invoice := invoiceDomain.NewInvoice(order, *userAddress, *vendorAddress, user, uuid.New(), time.Now().UTC())

	// --- Persistencia ---
	if err := s.invoices.Create(ctx, invoice); err != nil {
		if errors.Is(err, invoiceDomain.ErrInvoiceAlreadyExists) {
			// Reentrega del mismo evento: el pedido ya tiene factura.
			s.log.Info("Duplicate validation event ignored, invoice already exists",
				zap.String("order_id", order.ID.String()))
			return s.invoices.GetByOrderID(ctx, order.ID)
		}
		return nil, fmt.Errorf("persist invoice: %w", err)
	}

	if s.analytics != nil {
		entry := invoiceDomain.InvoiceIssuedLog{
			InvoiceID:   invoice.ID,
			OrderID:     invoice.OrderID,
			UserID:      order.UserID,
			ItemCount:   len(order.OrderItems),
			TotalAmount: order.CompensatableOrderAmount,
			IssuedAt:    invoice.IssuedAt,
		}
		if err := s.analytics.LogIssued(ctx, entry); err != nil {
			s.log.Warn("Failed to log invoice to analytics", zap.Error(err))
		}
	}

	s.cacheInvoice(invoice)

	// --- Publicación ---
	created := sharedEvents.InvoiceCreatedDTO{
		Order:   order,
		Invoice: invoice.ToDTO(),
	}
	if err := s.publisher.Publish(ctx, sharedEvents.TopicInvoiceCreated, created); err != nil {
		// La factura queda persistida; no hay compensación ni reintento.
		return invoice, fmt.Errorf("publish invoice created event: %w", err)
	}

	s.log.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("order_id", invoice.OrderID.String()),
	)
	return invoice, nil
}

// GetInvoice obtiene una factura por id (primero intenta desde cache).
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*invoiceDomain.Invoice, error) {
	if s.cache != nil {
		var inv invoiceDomain.Invoice
		if ok, _ := s.cache.Get(ctx, invoiceDomain.CacheKeyByID(id), &inv); ok {
			return &inv, nil
		}
	}

	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheInvoice(invoice)
	return invoice, nil
}

// GetInvoiceByOrder obtiene la factura de un pedido concreto.
func (s *InvoiceService) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*invoiceDomain.Invoice, error) {
	if s.cache != nil {
		var inv invoiceDomain.Invoice
		if ok, _ := s.cache.Get(ctx, invoiceDomain.CacheKeyByOrderID(orderID), &inv); ok {
			return &inv, nil
		}
	}

	invoice, err := s.invoices.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.cacheInvoice(invoice)
	return invoice, nil
}

// cacheInvoice actualiza la cache en background sin bloquear la respuesta.
func (s *InvoiceService) cacheInvoice(inv *invoiceDomain.Invoice) {
	if s.cache == nil {
		return
	}
	go func(inv *invoiceDomain.Invoice) {
		ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Set(ctxCache, invoiceDomain.CacheKeyByID(inv.ID), inv, 300)
		_ = s.cache.Set(ctxCache, invoiceDomain.CacheKeyByOrderID(inv.OrderID), inv, 300)
	}(inv)
}
