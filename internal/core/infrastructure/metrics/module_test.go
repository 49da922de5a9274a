package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}

func TestProvideServices(t *testing.T) {
	out := ProvideServices()
	assert.Same(t, out.Registry, out.Registerer)
	assert.Same(t, out.Registry, out.Gatherer)
}
