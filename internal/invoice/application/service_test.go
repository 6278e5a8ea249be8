package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
	"github.com/davicafu/facturalab/tests/mocks"
)

// fixture monta un servicio con las tres entidades ya agregadas: usuario con
// dirección, dirección del vendedor y pedido que las referencia.
type fixture struct {
	service   *InvoiceService
	invoices  *mocks.InMemoryInvoiceRepo
	users     *mocks.InMemoryUserRepo
	vendor    *mocks.InMemoryVendorRepo
	publisher *mocks.DummyPublisher
	analytics *mocks.DummyAnalytics
	order     sharedEvents.OrderEventData
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := mocks.NewInMemoryUserRepo()
	invoices := mocks.NewInMemoryInvoiceRepo()
	vendor := mocks.NewInMemoryVendorRepo()
	publisher := &mocks.DummyPublisher{}
	analytics := &mocks.DummyAnalytics{}

	userID := uuid.New()
	addrID := uuid.New()
	user := &userDomain.User{
		ID:        userID,
		FirstName: "Jane",
		LastName:  "Doe",
		Addresses: map[uuid.UUID]userDomain.UserAddress{
			addrID: {
				ID: addrID, Street1: "Calle Mayor 5", Street2: "Piso 3",
				City: "Madrid", PostalCode: "28013", Country: "Spain", UserID: userID,
			},
		},
	}
	assert.NoError(t, users.Create(context.Background(), user))
	assert.NoError(t, vendor.Replace(context.Background(), addressDomain.VendorAddress{
		ID: uuid.New(), Street1: "Gralstraße 1", Street2: "Etage 2",
		City: "Berlin", PostalCode: "10115", Country: "Germany", CompanyName: "Online Store GmbH",
	}))

	order := sharedEvents.OrderEventData{
		ID:          uuid.New(),
		UserID:      userID,
		CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		OrderStatus: sharedEvents.OrderStatusPlaced,
		OrderItems: []sharedEvents.OrderItemEventData{
			{
				ID: uuid.New(), CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
				ProductVariantID: uuid.New(), ProductVariantVersionID: uuid.New(),
				TaxRateVersionID: uuid.New(), ShoppingCartItemID: uuid.New(),
				Count: 2, CompensatableAmount: 2000, ShipmentMethodID: uuid.New(),
			},
		},
		ShipmentAddressID:        uuid.New(),
		InvoiceAddressID:         addrID,
		CompensatableOrderAmount: 2000,
		PaymentInformationID:     uuid.New(),
	}

	service := NewInvoiceService(invoices, users, vendor, publisher, analytics, nil, zap.NewNop())
	return &fixture{
		service:   service,
		invoices:  invoices,
		users:     users,
		vendor:    vendor,
		publisher: publisher,
		analytics: analytics,
		order:     order,
	}
}

func TestCreateFromOrder_Success(t *testing.T) {
	f := newFixture(t)

	inv, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.NoError(t, err)
	assert.NotNil(t, inv)
	assert.Equal(t, f.order.ID, inv.OrderID)
	assert.Contains(t, inv.Content, "Online Store GmbH")
	assert.Contains(t, inv.Content, "Total compensatable amount: 2000")

	// Factura persistida y recuperable por pedido
	got, err := f.invoices.GetByOrderID(context.Background(), f.order.ID)
	assert.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	// Exactamente una publicación con pedido y factura dentro
	assert.Len(t, f.publisher.Published, 1)
	assert.Equal(t, sharedEvents.TopicInvoiceCreated, f.publisher.Published[0].Topic)
	created, ok := f.publisher.Published[0].Event.(sharedEvents.InvoiceCreatedDTO)
	assert.True(t, ok)
	assert.Equal(t, f.order.ID, created.Order.ID)
	assert.Equal(t, inv.Content, created.Invoice.Content)

	// ✅ Y una entrada en analítica
	assert.Len(t, f.analytics.Entries, 1)
	assert.Equal(t, inv.ID, f.analytics.Entries[0].InvoiceID)
	assert.Equal(t, 1, f.analytics.Entries[0].ItemCount)
}

func TestCreateFromOrder_DuplicateRedelivery(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.NoError(t, err)

	// La reentrega devuelve la factura existente sin efectos adicionales
	second, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, f.invoices.Invoices, 1)
	assert.Len(t, f.publisher.Published, 1)
	assert.Len(t, f.analytics.Entries, 1)
}

func TestCreateFromOrder_AggregationFailures(t *testing.T) {
	t.Run("unknown invoice address", func(t *testing.T) {
		f := newFixture(t)
		f.order.InvoiceAddressID = uuid.New()

		_, err := f.service.CreateFromOrder(context.Background(), f.order)
		assert.ErrorIs(t, err, userDomain.ErrAddressNotFound)
		assert.Empty(t, f.invoices.Invoices)
		assert.Empty(t, f.publisher.Published)
	})

	t.Run("vendor address not set", func(t *testing.T) {
		f := newFixture(t)
		f.vendor.Current_ = nil

		_, err := f.service.CreateFromOrder(context.Background(), f.order)
		assert.ErrorIs(t, err, addressDomain.ErrVendorAddressNotSet)
		assert.Empty(t, f.invoices.Invoices)
		assert.Empty(t, f.publisher.Published)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		// La dirección se resuelve pero el perfil referenciado no existe
		f.order.UserID = uuid.New()

		_, err := f.service.CreateFromOrder(context.Background(), f.order)
		assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
		assert.Empty(t, f.invoices.Invoices)
		assert.Empty(t, f.publisher.Published)
	})
}

func TestCreateFromOrder_PublishFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.FailWith = errors.New("broker unavailable")

	inv, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.Error(t, err)
	assert.NotNil(t, inv)

	// La factura queda persistida aunque la publicación falle
	got, err := f.invoices.GetByOrderID(context.Background(), f.order.ID)
	assert.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
	assert.Empty(t, f.publisher.Published)
}

func TestCreateFromOrder_PersistFailure(t *testing.T) {
	f := newFixture(t)
	f.invoices.FailWith = errors.New("connection reset")

	_, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.Error(t, err)
	assert.Empty(t, f.publisher.Published)
	assert.Empty(t, f.analytics.Entries)
}

func TestCreateFromOrder_AnalyticsFailureIsBestEffort(t *testing.T) {
	f := newFixture(t)
	f.analytics.FailWith = errors.New("clickhouse down")

	inv, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.NoError(t, err)
	assert.NotNil(t, inv)
	assert.Len(t, f.publisher.Published, 1)
}

func TestGetInvoice_CacheFirst(t *testing.T) {
	f := newFixture(t)
	cache := mocks.NewDummyCache()
	f.service.cache = cache

	cached := &invoiceDomain.Invoice{ID: uuid.New(), OrderID: uuid.New(), Content: "cached"}
	cache.SetForTest(invoiceDomain.CacheKeyByID(cached.ID), cached)

	got, err := f.service.GetInvoice(context.Background(), cached.ID)
	assert.NoError(t, err)
	assert.Equal(t, "cached", got.Content)

	// Miss de cache -> repositorio
	_, err = f.service.GetInvoice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, invoiceDomain.ErrInvoiceNotFound)
}

func TestGetInvoiceByOrder_FromRepository(t *testing.T) {
	f := newFixture(t)

	inv, err := f.service.CreateFromOrder(context.Background(), f.order)
	assert.NoError(t, err)

	got, err := f.service.GetInvoiceByOrder(context.Background(), f.order.ID)
	assert.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	_, err = f.service.GetInvoiceByOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, invoiceDomain.ErrInvoiceNotFound)
}
