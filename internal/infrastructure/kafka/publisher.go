package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/pkg/config"
)

var _ ledger.EventPublisher = (*Publisher)(nil)

// MovementEvent es el payload JSON de cada movimiento publicado.
type MovementEvent struct {
	ID           string    `json:"id"`
	ItemKind     string    `json:"item_kind"`
	ItemID       string    `json:"item_id"`
	Quantity     string    `json:"quantity"`
	BalanceAfter string    `json:"balance_after"`
	SourceType   string    `json:"source_type"`
	SourceID     string    `json:"source_id"`
	SourceNumber string    `json:"source_number"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// messageWriter es lo que Publisher usa de *kafka.Writer (los tests lo sustituyen).
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher envía los movimientos de stock confirmados a un topic de Kafka, con clave = ID del artículo
// para que los movimientos de un mismo artículo conserven el orden dentro de la partición.
type Publisher struct {
	w messageWriter
}

// NewPublisher crea el productor para los brokers y topic configurados.
func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return &Publisher{w: &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}}
}

// Publish implementa ledger.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	msgs, err := Messages(movements)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write %d movements: %w", len(msgs), err)
	}
	return nil
}

// Close libera el writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

// Messages convierte movimientos en mensajes Kafka.
func Messages(movements []*entity.StockMovement) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, len(movements))
	for _, m := range movements {
		value, err := json.Marshal(MovementEvent{
			ID:           m.ID,
			ItemKind:     string(m.ItemKind),
			ItemID:       m.ItemID,
			Quantity:     m.Quantity.StringFixed(2),
			BalanceAfter: m.BalanceAfter.StringFixed(2),
			SourceType:   m.SourceType,
			SourceID:     m.SourceID,
			SourceNumber: m.SourceNumber,
			Reason:       m.Reason,
			CreatedAt:    m.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal movement %s: %w", m.ID, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(m.ItemID),
			Value: value,
			Time:  m.CreatedAt,
		})
	}
	return msgs, nil
}
