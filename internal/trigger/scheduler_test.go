package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDaily(t *testing.T) {
	// avant l'heure de tir → le jour même
	at := time.Date(2025, 6, 10, 6, 30, 0, 0, time.UTC)
	next := NextDaily(at, 8, 0)
	assert.Equal(t, time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), next)

	// après l'heure de tir → le lendemain
	at = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	next = NextDaily(at, 8, 0)
	assert.Equal(t, time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC), next)

	// pile à l'heure de tir → strictement après, donc le lendemain
	at = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	next = NextDaily(at, 8, 0)
	assert.Equal(t, time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC), next)
}

func TestNextWeekly(t *testing.T) {
	// mardi 10 juin 2025 → lundi 16 juin
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	next := NextWeekly(at, time.Monday, 8, 0)
	assert.Equal(t, time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Monday, next.Weekday())

	// lundi avant l'heure de tir → le jour même
	at = time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)
	next = NextWeekly(at, time.Monday, 8, 0)
	assert.Equal(t, time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC), next)
}

func TestNextMonthly(t *testing.T) {
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	next := NextMonthly(at, 1, 8, 0)
	assert.Equal(t, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC), next)

	// le 1er avant l'heure de tir → le jour même
	at = time.Date(2025, 7, 1, 5, 0, 0, 0, time.UTC)
	next = NextMonthly(at, 1, 8, 0)
	assert.Equal(t, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC), next)
}

func TestSchedulerJobWindows(t *testing.T) {
	s := NewScheduler(8, 0, 5, func(win Window) error { return nil })
	require.Len(t, s.jobs, 3)

	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	byName := map[string]scheduleJob{}
	for _, j := range s.jobs {
		byName[j.name] = j
	}

	assert.Equal(t, now.AddDate(0, 0, -1), byName["quotidien"].lookback(now))
	assert.Equal(t, now.AddDate(0, 0, -7), byName["hebdomadaire"].lookback(now))
	// le mensuel suit le calendrier, pas 30 jours fixes
	assert.Equal(t, time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC), byName["mensuel"].lookback(now))
}

func TestSchedulerFailureIsolatedPerJob(t *testing.T) {
	// exécute directement un tir : un échec passe par le collecteur et ne
	// remonte jamais
	var sunkJob string
	s := NewScheduler(8, 0, 5, func(win Window) error { return assert.AnError })
	s.SetErrorSink(func(job string, err error) { sunkJob = job })

	j := s.jobs[0]
	since := j.lookback(time.Now())
	s.fire(j, Window{Label: j.name, Since: &since, RecentLimit: s.recentLimit})

	assert.Equal(t, "quotidien", sunkJob)
}

func TestSchedulerPanicIsSunkNotFatal(t *testing.T) {
	var sunk error
	s := NewScheduler(8, 0, 5, func(win Window) error { panic("note hors domaine") })
	s.SetErrorSink(func(job string, err error) { sunk = err })

	j := s.jobs[1]
	since := j.lookback(time.Now())
	require.NotPanics(t, func() {
		s.fire(j, Window{Label: j.name, Since: &since, RecentLimit: s.recentLimit})
	})
	require.Error(t, sunk)
	assert.Contains(t, sunk.Error(), "panique")
}
