//go:build integration
// +build integration

package broker

/*
	Para rodar: go test -tags=integration -v ./internal/broker -run TestRabbitMQ_PublishAndSubscribe -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// Sobe RabbitMQ real, assina com o Consumer e publica com o Publisher
func TestRabbitMQ_PublishAndSubscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "rabbitmq:3.13",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start rabbit: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5672/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	uri := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
	exchange := "vincipitch_test"

	// dois consumidores com fila exclusiva: fanout entrega para ambos
	got1 := make(chan models.AnalysisEvent, 1)
	got2 := make(chan models.AnalysisEvent, 1)
	for _, out := range []chan models.AnalysisEvent{got1, got2} {
		cons := NewConsumer(ConsumerConfig{URI: uri, Exchange: exchange}, nil)
		if err := cons.Subscribe(ctx, func(ev models.AnalysisEvent) { out <- ev }); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		t.Cleanup(func() { _ = cons.Unsubscribe() })
	}

	pub, err := NewPublisher(uri, exchange)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	nota := 4.2
	ev := models.AnalysisEvent{
		Tipo: models.EventoAnaliseConcluida, EmpresaID: "e1", EmpresaNome: "Acme",
		Status: models.StatusConcluida, StatusAnterior: models.StatusProcessando, NotaFinal: &nota,
	}
	if err := pub.PublishEvent(ctx, ev); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for i, ch := range []chan models.AnalysisEvent{got1, got2} {
		select {
		case m := <-ch:
			if m.EmpresaID != "e1" || m.Status != models.StatusConcluida {
				t.Fatalf("consumer %d got %#v", i, m)
			}
		case <-time.After(10 * time.Second):
			t.Fatalf("timeout esperando mensagem no consumer %d", i)
		}
	}
}
