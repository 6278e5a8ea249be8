package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	addressApp "github.com/davicafu/facturalab/internal/address/application"
	invoiceApp "github.com/davicafu/facturalab/internal/invoice/application"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	userApp "github.com/davicafu/facturalab/internal/user/application"
	"github.com/davicafu/facturalab/tests/mocks"
)

type handlerFixture struct {
	router    *gin.Engine
	invoices  *mocks.InMemoryInvoiceRepo
	users     *mocks.InMemoryUserRepo
	vendor    *mocks.InMemoryVendorRepo
	publisher *mocks.DummyPublisher
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := mocks.NewInMemoryUserRepo()
	invoices := mocks.NewInMemoryInvoiceRepo()
	vendor := mocks.NewInMemoryVendorRepo()
	publisher := &mocks.DummyPublisher{}

	userService := userApp.NewUserService(users, zap.NewNop())
	vendorService := addressApp.NewVendorAddressService(vendor, zap.NewNop())
	invoiceService := invoiceApp.NewInvoiceService(invoices, users, vendor, publisher, nil, nil, zap.NewNop())

	handler := NewEventHandler(invoiceService, userService, vendorService, "pubsub", zap.NewNop())
	router := gin.New()
	RegisterEventRoutes(router, handler)
	RegisterQueryRoutes(router, NewQueryHandler(invoiceService))

	return &handlerFixture{
		router:    router,
		invoices:  invoices,
		users:     users,
		vendor:    vendor,
		publisher: publisher,
	}
}

func (f *handlerFixture) post(t *testing.T, route, topic string, data interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(data)
	assert.NoError(t, err)
	body, err := json.Marshal(sharedEvents.Envelope{Topic: topic, Data: raw})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestListSubscriptions(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/dapr/subscribe", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var subs []sharedEvents.Subscription
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	assert.Len(t, subs, 5)

	routesByTopic := make(map[string]string)
	for _, s := range subs {
		assert.Equal(t, "pubsub", s.PubsubName)
		routesByTopic[s.Topic] = s.Route
	}
	assert.Equal(t, "/on-discount-validation-succeded", routesByTopic[sharedEvents.TopicOrderValidationSucceeded])
	assert.Equal(t, "/on-user-creation-event", routesByTopic[sharedEvents.TopicUserCreated])
}

func TestOnUserCreated_Success(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()

	w := f.post(t, "/on-user-creation-event", sharedEvents.TopicUserCreated, gin.H{
		"id": id, "firstName": "Jane", "lastName": "Doe",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": 0}`, w.Body.String())

	user, err := f.users.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "Jane", user.FirstName)
}

func TestOnUserCreated_TopicMismatch(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()

	// Topic correcto de otra ruta: se rechaza sin efectos
	w := f.post(t, "/on-user-creation-event", sharedEvents.TopicUserAddressCreated, gin.H{
		"id": id, "firstName": "Jane", "lastName": "Doe",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, f.users.Users)
}

func TestOnUserCreated_MalformedPayload(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/on-user-creation-event", bytes.NewReader([]byte(`{"topic": `)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, f.users.Users)
}

func TestOnUserCreated_MissingRequiredField(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/on-user-creation-event", sharedEvents.TopicUserCreated, gin.H{
		"id": uuid.New(), "firstName": "Jane",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, f.users.Users)
}

func TestOnVendorAddressCreated_Success(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/on-vendor-address-creation-event", sharedEvents.TopicVendorAddressCreated, gin.H{
		"id": uuid.New(), "street1": "Gralstraße 1", "street2": "Etage 2",
		"city": "Berlin", "postalCode": "10115", "country": "Germany",
		"companyName": "Online Store GmbH",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	current, err := f.vendor.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Online Store GmbH", current.CompanyName)
}

func TestOnUserAddressLifecycle(t *testing.T) {
	f := newHandlerFixture(t)
	userID := uuid.New()
	addrID := uuid.New()

	w := f.post(t, "/on-user-creation-event", sharedEvents.TopicUserCreated, gin.H{
		"id": userID, "firstName": "Jane", "lastName": "Doe",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.post(t, "/on-user-address-creation-event", sharedEvents.TopicUserAddressCreated, gin.H{
		"id": addrID, "street1": "Calle Mayor 5", "street2": "Piso 3",
		"city": "Madrid", "postalCode": "28013", "country": "Spain", "userId": userID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	_, addr, err := f.users.FindAddress(context.Background(), addrID)
	assert.NoError(t, err)
	assert.Equal(t, "Calle Mayor 5", addr.Street1)

	w = f.post(t, "/on-user-address-archived-event", sharedEvents.TopicUserAddressArchived, gin.H{
		"id": addrID, "userId": userID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	_, _, err = f.users.FindAddress(context.Background(), addrID)
	assert.Error(t, err)
}

func TestOnOrderValidationSucceeded_FullPipeline(t *testing.T) {
	f := newHandlerFixture(t)
	userID := uuid.New()
	addrID := uuid.New()

	// Estado previo: vendedor, usuario y dirección llegan por sus eventos
	f.post(t, "/on-vendor-address-creation-event", sharedEvents.TopicVendorAddressCreated, gin.H{
		"id": uuid.New(), "street1": "Gralstraße 1", "street2": "Etage 2",
		"city": "Berlin", "postalCode": "10115", "country": "Germany",
		"companyName": "Online Store GmbH",
	})
	f.post(t, "/on-user-creation-event", sharedEvents.TopicUserCreated, gin.H{
		"id": userID, "firstName": "Jane", "lastName": "Doe",
	})
	f.post(t, "/on-user-address-creation-event", sharedEvents.TopicUserAddressCreated, gin.H{
		"id": addrID, "street1": "Calle Mayor 5", "street2": "Piso 3",
		"city": "Madrid", "postalCode": "28013", "country": "Spain", "userId": userID,
	})

	orderID := uuid.New()
	order := gin.H{
		"order": gin.H{
			"id": orderID, "userId": userID,
			"createdAt": "2024-03-01T10:00:00Z", "orderStatus": "Placed",
			"orderItems": []gin.H{{
				"id": uuid.New(), "createdAt": "2024-03-01T09:00:00Z",
				"productVariantId": uuid.New(), "productVariantVersionId": uuid.New(),
				"taxRateVersionId": uuid.New(), "shoppingCartItemId": uuid.New(),
				"count": 2, "compensatableAmount": 2000, "shipmentMethodId": uuid.New(),
			}},
			"shipmentAddressId": uuid.New(), "invoiceAddressId": addrID,
			"compensatableOrderAmount": 2000, "paymentInformationId": uuid.New(),
		},
	}

	w := f.post(t, "/on-discount-validation-succeded", sharedEvents.TopicOrderValidationSucceeded, order)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": 0}`, w.Body.String())

	assert.Len(t, f.invoices.Invoices, 1)
	assert.Len(t, f.publisher.Published, 1)
	assert.Equal(t, sharedEvents.TopicInvoiceCreated, f.publisher.Published[0].Topic)

	// Consulta de lectura sobre la factura recién creada
	inv, err := f.invoices.GetByOrderID(context.Background(), orderID)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%s/invoice", orderID), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), inv.ID.String())
}

func TestOnOrderValidationSucceeded_AggregationFailure(t *testing.T) {
	f := newHandlerFixture(t)

	// Sin usuario ni dirección registrados el pipeline aborta con 500
	order := gin.H{
		"order": gin.H{
			"id": uuid.New(), "userId": uuid.New(),
			"createdAt": "2024-03-01T10:00:00Z", "orderStatus": "Placed",
			"orderItems":        []gin.H{},
			"shipmentAddressId": uuid.New(), "invoiceAddressId": uuid.New(),
			"compensatableOrderAmount": 0, "paymentInformationId": uuid.New(),
		},
	}

	w := f.post(t, "/on-discount-validation-succeded", sharedEvents.TopicOrderValidationSucceeded, order)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, f.invoices.Invoices)
	assert.Empty(t, f.publisher.Published)
}

func TestGetInvoice_InvalidID(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/invoices/not-a-uuid", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInvoice_NotFound(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
