package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapingModeDescription(t *testing.T) {
	assert.Contains(t, ShapingMinimal.Description(), "minimal")
	assert.Contains(t, ShapingModerate.Description(), "standard")
	assert.Contains(t, ShapingAggressive.Description(), "aggressive")
	assert.Equal(t, "Unknown shaping mode", ShapingMode("BOGUS").Description())
}
