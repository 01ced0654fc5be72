package trigger

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdFiresOnceAtCrossing(t *testing.T) {
	var fires atomic.Int32
	c := NewCoordinator(3, 3, func(win Window) error {
		fires.Add(1)
		return nil
	})

	c.OnReviewInserted()
	c.OnReviewInserted()
	c.Wait()
	assert.Equal(t, int32(0), fires.Load())
	assert.Equal(t, 2, c.Count())

	c.OnReviewInserted()
	c.Wait()
	assert.Equal(t, int32(1), fires.Load())
	assert.Equal(t, 0, c.Count(), "le compteur doit revenir à zéro après le tir")

	// une quatrième insertion ne re-déclenche pas
	c.OnReviewInserted()
	c.Wait()
	assert.Equal(t, int32(1), fires.Load())
	assert.Equal(t, 1, c.Count())
}

func TestThresholdWindowIsRecentN(t *testing.T) {
	var got Window
	c := NewCoordinator(1, 5, func(win Window) error {
		got = win
		return nil
	})
	c.OnReviewInserted()
	c.Wait()

	assert.Nil(t, got.Since, "la politique à seuil interroge les N plus récents, pas une fenêtre temporelle")
	assert.Equal(t, 5, got.RecentLimit)
	assert.Equal(t, "instantané", got.Label)
}

func TestThresholdNoDoubleFireUnderConcurrency(t *testing.T) {
	var fires atomic.Int32
	c := NewCoordinator(3, 3, func(win Window) error {
		fires.Add(1)
		return nil
	})

	const n = 300 // 100 franchissements exacts
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnReviewInserted()
		}()
	}
	wg.Wait()
	c.Wait()

	assert.Equal(t, int32(n/3), fires.Load())
	assert.Equal(t, 0, c.Count())
}

func TestThresholdFailureDoesNotBlockNextCrossing(t *testing.T) {
	var fires atomic.Int32
	var sunk atomic.Int32
	c := NewCoordinator(2, 3, func(win Window) error {
		if fires.Add(1) == 1 {
			return errors.New("smtp indisponible")
		}
		return nil
	})
	c.SetErrorSink(func(err error) { sunk.Add(1) })

	c.OnReviewInserted()
	c.OnReviewInserted()
	c.Wait()
	require.Equal(t, int32(1), fires.Load())
	assert.Equal(t, int32(1), sunk.Load(), "l'échec est consigné, pas propagé")

	c.OnReviewInserted()
	c.OnReviewInserted()
	c.Wait()
	assert.Equal(t, int32(2), fires.Load(), "le franchissement suivant tire normalement")
}

func TestThresholdPanicIsSunkNotFatal(t *testing.T) {
	var fires atomic.Int32
	var sunk error
	c := NewCoordinator(1, 3, func(win Window) error {
		if fires.Add(1) == 1 {
			panic("note hors domaine")
		}
		return nil
	})
	c.SetErrorSink(func(err error) { sunk = err })

	c.OnReviewInserted()
	c.Wait()
	require.Error(t, sunk, "la panique est convertie en erreur consignée")
	assert.Contains(t, sunk.Error(), "panique")

	// le déclencheur reste opérationnel après la panique
	c.OnReviewInserted()
	c.Wait()
	assert.Equal(t, int32(2), fires.Load())
}

func TestThresholdMinimumOne(t *testing.T) {
	var fires atomic.Int32
	c := NewCoordinator(0, 3, func(win Window) error {
		fires.Add(1)
		return nil
	})
	c.OnReviewInserted()
	c.Wait()
	assert.Equal(t, int32(1), fires.Load())
}
