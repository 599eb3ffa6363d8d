package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromSpec_MemoryBackend(t *testing.T) {
	built, cleanup := CreateFromSpec(context.Background(), map[string]spec.Backend{
		"mem": {Type: "memory"},
	}, 8)
	defer cleanup()

	require.Len(t, built, 1)
	assert.Equal(t, "mem", built[0].Name)
	assert.Equal(t, backend.KindMemory, built[0].Kind)
	assert.NoError(t, built[0].SetupErr)
	assert.NotNil(t, built[0].Store)
}

func TestCreateFromSpec_UnknownTypeIsSetupFailure(t *testing.T) {
	built, cleanup := CreateFromSpec(context.Background(), map[string]spec.Backend{
		"bad": {Type: "redis", Connection: "localhost:6379"},
		"mem": {Type: "memory"},
	}, 8)
	defer cleanup()

	require.Len(t, built, 2)

	byName := make(map[string]Built, len(built))
	for _, b := range built {
		byName[b.Name] = b
	}

	assert.Error(t, byName["bad"].SetupErr)
	assert.Nil(t, byName["bad"].Store)

	assert.NoError(t, byName["mem"].SetupErr)
	assert.NotNil(t, byName["mem"].Store)
}

func TestCreateFromSpec_DeterministicOrder(t *testing.T) {
	built, cleanup := CreateFromSpec(context.Background(), map[string]spec.Backend{
		"c": {Type: "memory"},
		"a": {Type: "memory"},
		"b": {Type: "memory"},
	}, 8)
	defer cleanup()

	require.Len(t, built, 3)
	assert.Equal(t, "a", built[0].Name)
	assert.Equal(t, "b", built[1].Name)
	assert.Equal(t, "c", built[2].Name)
}
