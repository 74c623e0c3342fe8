package logger

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ExpectWith(t *testing.T) {
	require := require.New(t)

	ml := NewMockLogger()
	ml.ExpectWith("component", "engine").Once()
	ml.On("Warn", "dropped", mock.Anything).Once()

	child := ml.With("component", "engine")
	require.Same(ml, child)

	child.Warn("dropped", "bytes", 80)
	ml.AssertExpectations(t)
}
