package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	sharedBus "github.com/davicafu/facturalab/internal/shared/infra/platform/bus"
)

// DaprPublisher publica eventos mediante un POST al endpoint local de
// publicación del sidecar, p. ej. http://localhost:3500/v1.0/publish/<topic>.
type DaprPublisher struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewDaprPublisher(baseURL string, log *zap.Logger) *DaprPublisher {
	return &DaprPublisher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

func (p *DaprPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	url := p.baseURL + "/" + topic
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("Error publishing event", zap.String("topic", topic), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		err := fmt.Errorf("publish to %s returned status %d", topic, resp.StatusCode)
		p.log.Error("Error publishing event", zap.String("topic", topic), zap.Error(err))
		return err
	}

	p.log.Debug("Event published successfully", zap.String("topic", topic))
	return nil
}

// Verificación estática
var _ sharedBus.Publisher = (*DaprPublisher)(nil)
