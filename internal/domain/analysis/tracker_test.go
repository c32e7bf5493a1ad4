package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_NewStartSupersedesPrevious(t *testing.T) {
	tr := NewTracker()

	first, doneFirst := tr.Start(context.Background(), "u-1")
	second, doneSecond := tr.Start(context.Background(), "u-1")
	other, doneOther := tr.Start(context.Background(), "u-2")

	require.Error(t, first.Err())
	assert.ErrorIs(t, context.Cause(first), ErrSuperseded)
	assert.NoError(t, second.Err())
	assert.NoError(t, other.Err())
	assert.Equal(t, 2, tr.InFlight())

	// el done del superado no borra la entrada vigente
	doneFirst()
	assert.Equal(t, 2, tr.InFlight())

	doneSecond()
	doneOther()
	assert.Equal(t, 0, tr.InFlight())
	assert.ErrorIs(t, context.Cause(second), context.Canceled)
}
