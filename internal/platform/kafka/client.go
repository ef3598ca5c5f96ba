// Package kafka builds franz-go clients from process configuration.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"njgeo/internal/platform/config"
)

// ErrNotConfigured is returned when KAFKA_BROKERS is empty.
var ErrNotConfigured = errors.New("kafka: brokers not configured")

// Options returns the connection options shared by every client built from cfg.
// Consumers append their own partition assignment.
func Options(cfg config.KafkaConfig) []kgo.Opt {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Brokers...)}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if cfg.DialTimeout > 0 {
		opts = append(opts, kgo.DialTimeout(cfg.DialTimeout))
	}
	return opts
}

// Client is an admin-capable connection used for metadata and offset lookups.
type Client struct {
	*kgo.Client
	opts []kgo.Opt
}

// New connects to the cluster and pings a broker before returning.
func New(ctx context.Context, cfg config.KafkaConfig) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNotConfigured
	}
	opts := Options(cfg)
	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	if err := cl.Ping(ctx); err != nil {
		cl.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	return &Client{Client: cl, opts: opts}, nil
}

// Consumer opens a second client with the same connection options plus extra.
// The caller closes it.
func (c *Client) Consumer(extra ...kgo.Opt) (*kgo.Client, error) {
	opts := make([]kgo.Opt, 0, len(c.opts)+len(extra))
	opts = append(opts, c.opts...)
	opts = append(opts, extra...)
	return kgo.NewClient(opts...)
}

// Health checks that at least one broker answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx)
}

// Close releases broker connections. It matches the closer signature used at shutdown.
func (c *Client) Close() error {
	c.Client.Close()
	return nil
}
