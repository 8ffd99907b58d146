package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

var ErrAlreadySubscribed = errors.New("consumer already subscribed")

type ConsumerConfig struct {
	URI      string
	Exchange string
	// Queue vazia: fila exclusiva com nome gerado pelo broker.
	Queue    string
	Prefetch int
	Tag      string
}

// Consumer liga uma fila ao exchange de eventos e entrega cada
// AnalysisEvent ao callback registrado.
type Consumer struct {
	cfg ConsumerConfig
	log *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
	done chan struct{}
}

func NewConsumer(cfg ConsumerConfig, log *slog.Logger) *Consumer {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 50
	}
	if cfg.Tag == "" {
		cfg.Tag = "vincipitch-consumer"
	}
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{cfg: cfg, log: log.With("cmp", "broker.consumer")}
}

func decodeEvent(body []byte) (models.AnalysisEvent, error) {
	var ev models.AnalysisEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", err)
	}
	if ev.EmpresaID == "" && ev.Tipo != models.EventoRankingAtualizado {
		return ev, errors.New("decode event: empresa_id vazio")
	}
	return ev, nil
}

func (c *Consumer) Subscribe(ctx context.Context, fn func(models.AnalysisEvent)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return ErrAlreadySubscribed
	}

	conn, err := amqp.Dial(c.cfg.URI)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	fail := func(err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	if err := declareExchange(ch, c.cfg.Exchange); err != nil {
		return fail(err)
	}

	durable, exclusive := true, false
	if c.cfg.Queue == "" {
		durable, exclusive = false, true
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, durable, !durable, exclusive, false, nil)
	if err != nil {
		return fail(err)
	}
	if err := ch.QueueBind(q.Name, "", c.cfg.Exchange, false, nil); err != nil {
		return fail(err)
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fail(err)
	}

	deliveries, err := ch.Consume(q.Name, c.cfg.Tag, false, exclusive, false, false, nil)
	if err != nil {
		return fail(err)
	}

	c.conn, c.ch = conn, ch
	c.done = make(chan struct{})
	go c.loop(ctx, deliveries, fn, c.done)

	c.log.Info("rabbit_consumer_started", "exchange", c.cfg.Exchange, "queue", q.Name)
	return nil
}

func (c *Consumer) loop(ctx context.Context, deliveries <-chan amqp.Delivery, fn func(models.AnalysisEvent), done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				c.log.Warn("deliveries_channel_closed")
				return
			}
			ev, err := decodeEvent(d.Body)
			if err != nil {
				// mensagem inválida não volta para a fila
				c.log.Warn("event_discarded", "err", err)
				_ = d.Nack(false, false)
				continue
			}
			fn(ev)
			_ = d.Ack(false)
		}
	}
}

// Unsubscribe cancela o consumo e fecha a conexão. Chamadas repetidas
// não fazem nada.
func (c *Consumer) Unsubscribe() error {
	c.mu.Lock()
	conn, ch, done := c.conn, c.ch, c.done
	c.conn, c.ch, c.done = nil, nil, nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	errCancel := ch.Cancel(c.cfg.Tag, false)
	errCh := ch.Close()
	errConn := conn.Close()
	<-done
	c.log.Info("rabbit_consumer_stopped")
	return errors.Join(errCancel, errCh, errConn)
}
