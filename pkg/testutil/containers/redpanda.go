//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"njgeo/internal/platform/config"
	"njgeo/internal/platform/kafka"
)

// RedpandaContainer is a single-node Kafka-compatible broker.
type RedpandaContainer struct {
	Container testcontainers.Container
	Broker    string
	Client    *kafka.Client
}

func NewRedpandaContainer(t *testing.T) *RedpandaContainer {
	t.Helper()
	ctx := context.Background()

	container, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.2.4")
	if err != nil {
		t.Fatalf("start redpanda container: %v", err)
	}
	broker, err := container.KafkaSeedBroker(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("redpanda seed broker: %v", err)
	}

	client, err := kafka.New(ctx, config.KafkaConfig{
		Brokers:     []string{broker},
		ClientID:    "njgeo-test",
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("dial redpanda: %v", err)
	}
	return &RedpandaContainer{Container: container, Broker: broker, Client: client}
}

// CreateCompactedTopic creates topic with cleanup.policy=compact.
func (r *RedpandaContainer) CreateCompactedTopic(ctx context.Context, topic string, partitions int32) error {
	compact := "compact"
	resp, err := kadm.NewClient(r.Client.Client).CreateTopic(ctx, partitions, 1, map[string]*string{"cleanup.policy": &compact}, topic)
	if err != nil {
		return err
	}
	return resp.Err
}

// Produce writes records synchronously.
func (r *RedpandaContainer) Produce(ctx context.Context, records ...*kgo.Record) error {
	return r.Client.ProduceSync(ctx, records...).FirstErr()
}
