package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
)

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	inv := invoiceDomain.Invoice{ID: uuid.New(), OrderID: uuid.New(), Content: "# Invoice"}
	key := invoiceDomain.CacheKeyByID(inv.ID)

	var miss invoiceDomain.Invoice
	found, err := c.Get(ctx, key, &miss)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.Set(ctx, key, inv, 60))

	var got invoiceDomain.Invoice
	found, err = c.Get(ctx, key, &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, inv.ID, got.ID)
	assert.Equal(t, inv.Content, got.Content)

	assert.NoError(t, c.Delete(ctx, key))
	found, _ = c.Get(ctx, key, &got)
	assert.False(t, found)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	key := invoiceDomain.CacheKeyByOrderID(uuid.New())
	assert.NoError(t, c.Set(ctx, key, "value", 1))

	// Pasado el TTL la entrada se trata como miss aunque siga en el mapa
	time.Sleep(1100 * time.Millisecond)

	var got string
	found, err := c.Get(ctx, key, &got)
	assert.NoError(t, err)
	assert.False(t, found)
}
