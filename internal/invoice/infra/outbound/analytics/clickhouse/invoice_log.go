package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
)

// InvoiceAnalyticsRepo implementa la interfaz AnalyticsRecorder para ClickHouse.
type InvoiceAnalyticsRepo struct {
	db *sql.DB
}

// NewInvoiceAnalyticsRepo es el constructor.
func NewInvoiceAnalyticsRepo(addr string, dbName string) (*InvoiceAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &InvoiceAnalyticsRepo{db: conn}, nil
}

// LogIssued registra una factura emitida en la tabla de reporting.
func (r *InvoiceAnalyticsRepo) LogIssued(ctx context.Context, entry invoiceDomain.InvoiceIssuedLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices_log (invoice_id, order_id, user_id, item_count, total_amount, issued_at)
		 VALUES (?,?,?,?,?,?)`,
		entry.InvoiceID, entry.OrderID, entry.UserID,
		uint32(entry.ItemCount), entry.TotalAmount, entry.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log issued invoice %s: %w", entry.InvoiceID, err)
	}
	return nil
}

// InitSchema crea la tabla en ClickHouse si no existe.
func (r *InvoiceAnalyticsRepo) InitSchema() error {
	// Tabla optimizada para analítica, particionada por mes de emisión.
	query := `
		CREATE TABLE IF NOT EXISTS invoices_log (
			invoice_id   UUID,
			order_id     UUID,
			user_id      UUID,
			item_count   UInt32,
			total_amount UInt64,
			issued_at    DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(issued_at)
		ORDER BY (user_id, issued_at);
	`
	_, err := r.db.Exec(query)
	return err
}

// Verificación estática de la interfaz.
var _ invoiceDomain.AnalyticsRecorder = (*InvoiceAnalyticsRepo)(nil)
