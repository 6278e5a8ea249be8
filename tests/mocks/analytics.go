package mocks

import (
	"context"
	"sync"

	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
)

// DummyAnalytics registra en memoria las facturas enviadas al sink analítico.
type DummyAnalytics struct {
	Entries []invoiceDomain.InvoiceIssuedLog
	mu      sync.Mutex

	// FailWith fuerza el error devuelto por LogIssued.
	FailWith error
}

func (a *DummyAnalytics) LogIssued(ctx context.Context, entry invoiceDomain.InvoiceIssuedLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FailWith != nil {
		return a.FailWith
	}
	a.Entries = append(a.Entries, entry)
	return nil
}

// Verificación estática
var _ invoiceDomain.AnalyticsRecorder = (*DummyAnalytics)(nil)
