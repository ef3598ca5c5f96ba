//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"njgeo/pkg/testutil/containers"
)

func TestHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	assert.NoError(t, rc.Client.Health(context.Background()))
}
