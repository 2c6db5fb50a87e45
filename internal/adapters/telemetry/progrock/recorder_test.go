package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fnpack/internal/adapters/telemetry/progrock"
	"go.trai.ch/fnpack/internal/core/domain"
	"go.trai.ch/fnpack/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Lifecycle(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "archive")

	if _, err := vertex.Stdout().Write([]byte("adding handler.py\n")); err != nil {
		t.Errorf("failed to write to stdout: %v", err)
	}
	if _, err := vertex.Stderr().Write([]byte("warning\n")); err != nil {
		t.Errorf("failed to write to stderr: %v", err)
	}
	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Complete(nil)

	// The vertex must be retrievable from the returned context.
	got := ports.VertexFromContext(ctx)
	assert.Equal(t, vertex, got)

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}
