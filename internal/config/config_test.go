package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadDefaults(t *testing.T) {
	s := Read()
	assert.Equal(t, "schedule", s.TriggerPolicy)
	assert.Equal(t, 3, s.ReportThreshold)
	assert.Equal(t, 3, s.RecentLimit)
	assert.Equal(t, 8, s.ScheduleHour)
	assert.Equal(t, "standard", s.SchemaVariant)
}

func TestReadOverrides(t *testing.T) {
	t.Setenv("TRIGGER_POLICY", "threshold")
	t.Setenv("REPORT_THRESHOLD", "5")
	t.Setenv("REPORT_RECENT_LIMIT", "4")
	t.Setenv("SCHEMA_VARIANT", "extended")

	s := Read()
	assert.Equal(t, "threshold", s.TriggerPolicy)
	assert.Equal(t, 5, s.ReportThreshold)
	assert.Equal(t, 4, s.RecentLimit)
	assert.Equal(t, "extended", s.SchemaVariant)
}

func TestReadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("REPORT_THRESHOLD", "beaucoup")
	s := Read()
	assert.Equal(t, 3, s.ReportThreshold)
}
