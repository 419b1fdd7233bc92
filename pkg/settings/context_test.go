package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntoContextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
	}{
		{name: "empty", run: &Run{}},
		{name: "with values", run: &Run{NoColor: true, Interactive: true, Source: Source{Dataset: "veiculos"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := IntoContext(context.Background(), tt.run)
			got, ok := FromContext(ctx)
			require.True(t, ok)
			assert.Same(t, tt.run, got)
		})
	}
}

func TestFromContextMissing(t *testing.T) {
	got, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)

	wrong := context.WithValue(context.Background(), runContextKey{}, "not a run")
	_, ok = FromContext(wrong)
	assert.False(t, ok)

	var nilRun *Run
	_, ok = FromContext(IntoContext(context.Background(), nilRun))
	assert.False(t, ok)
}

func TestFromContextOrDefault(t *testing.T) {
	assert.Equal(t, NewCliParams(), FromContextOrDefault(context.Background()))

	run := &Run{ExportDir: "/tmp/out"}
	assert.Same(t, run, FromContextOrDefault(IntoContext(context.Background(), run)))
}
