package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDescribeFiveTiers(t *testing.T) {
	s, err := Variant("standard")
	require.NoError(t, err)

	assert.Equal(t, "Excellent", s.Describe(intPtr(5)).Label)
	assert.Equal(t, "#10b981", s.Describe(intPtr(5)).Color)
	assert.Equal(t, "Bien", s.Describe(intPtr(3)).Label)
	assert.Equal(t, "#f59e0b", s.Describe(intPtr(3)).Color)
	assert.Equal(t, "Faible", s.Describe(intPtr(1)).Label)
	assert.Equal(t, "#ef4444", s.Describe(intPtr(1)).Color)
}

func TestDescribeMissingValueIsNeutral(t *testing.T) {
	for _, name := range []string{"standard", "extended", "operations"} {
		s, err := Variant(name)
		require.NoError(t, err)
		tier := s.Describe(nil)
		assert.Equal(t, "—", tier.Label, "variante %s", name)
		assert.Equal(t, "#6b7280", tier.Color, "variante %s", name)
	}
}

func TestIsValidValueContinuousRange(t *testing.T) {
	s, _ := Variant("extended")
	for v := 1; v <= 5; v++ {
		assert.True(t, s.IsValidValue(v), "valeur %d", v)
	}
	assert.False(t, s.IsValidValue(0))
	assert.False(t, s.IsValidValue(6))
	assert.False(t, s.IsValidValue(-1))
}

func TestIsValidValueRestrictedRange(t *testing.T) {
	s, _ := Variant("operations")
	assert.True(t, s.IsValidValue(1))
	assert.True(t, s.IsValidValue(3))
	assert.True(t, s.IsValidValue(5))
	assert.False(t, s.IsValidValue(2))
	assert.False(t, s.IsValidValue(4))
}

func TestDescribeMeanRoundsToNearestValidValue(t *testing.T) {
	s, _ := Variant("standard")
	m := 4.6
	assert.Equal(t, "Excellent", s.DescribeMean(&m).Label)
	m = 2.9
	assert.Equal(t, "Bien", s.DescribeMean(&m).Label)
	assert.Equal(t, "—", s.DescribeMean(nil).Label)

	// sur l'échelle {1,3,5}, 4.0 est à égale distance de 3 et 5 → la meilleure note gagne
	ops, _ := Variant("operations")
	m = 4.0
	assert.Equal(t, "Excellent", ops.DescribeMean(&m).Label)
}

func TestVariantUnknown(t *testing.T) {
	_, err := Variant("nope")
	assert.Error(t, err)
}

func TestVariantDimensions(t *testing.T) {
	s, _ := Variant("operations")
	assert.Len(t, s.Dimensions, 10)
	assert.True(t, s.HasDimension("minimarket"))
	assert.False(t, s.HasDimension("pool"))
}
