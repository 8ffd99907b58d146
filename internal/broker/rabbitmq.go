package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

const DefaultExchange = "vincipitch_eventos"

// declareExchange garante o fanout durável onde os eventos são publicados.
func declareExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(uri, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func newPublishing(ev models.AnalysisEvent, now time.Time) (amqp.Publishing, error) {
	if ev.Timestamp == "" {
		ev.Timestamp = now.UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Type:         string(ev.Tipo),
		Body:         body,
		Headers:      amqp.Table{"empresa_id": ev.EmpresaID},
	}, nil
}

// PublishEvent serializa o evento em JSON e publica no exchange.
func (p *Publisher) PublishEvent(ctx context.Context, ev models.AnalysisEvent) error {
	if ctx == nil {
		c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ctx = c
	}
	msg, err := newPublishing(ev, time.Now())
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(
		ctx,
		p.exchange,
		"",    // fanout ignora routing key
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (p *Publisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}

	return errors.Join(errCh, errConn)
}
