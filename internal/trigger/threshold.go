package trigger

import (
	"fmt"
	"log"
	"sync"
)

// Coordinator implémente la politique à seuil : un compteur de soumissions,
// remis à zéro dès le franchissement, avant que le travail (lent) de
// génération ne démarre. Les insertions arrivant pendant un rapport en cours
// comptent pour le franchissement suivant.
type Coordinator struct {
	mu    sync.Mutex
	count int

	threshold   int
	recentLimit int
	report      ReportFunc
	onError     func(error)

	wg sync.WaitGroup
}

// NewCoordinator construit la politique à seuil. threshold et recentLimit
// sont indépendants : franchir le seuil déclenche un rapport sur les
// recentLimit soumissions les plus récentes.
func NewCoordinator(threshold, recentLimit int, report ReportFunc) *Coordinator {
	if threshold < 1 {
		threshold = 1
	}
	return &Coordinator{
		threshold:   threshold,
		recentLimit: recentLimit,
		report:      report,
		onError: func(err error) {
			log.Printf("❌ Échec du rapport déclenché par seuil: %v", err)
		},
	}
}

// SetErrorSink remplace le collecteur d'erreurs (observabilité).
func (c *Coordinator) SetErrorSink(fn func(error)) {
	if fn != nil {
		c.onError = fn
	}
}

// OnReviewInserted est appelé après chaque insertion réussie. L'incrément,
// la comparaison et la remise à zéro se font sous le même verrou : deux
// insertions quasi simultanées ne peuvent pas déclencher deux rapports pour
// un même franchissement. Le rapport part en arrière-plan, l'appelant ne
// l'attend jamais.
func (c *Coordinator) OnReviewInserted() {
	c.mu.Lock()
	c.count++
	fire := c.count >= c.threshold
	if fire {
		c.count = 0
	}
	c.mu.Unlock()

	if !fire {
		return
	}

	win := Window{Label: "instantané", RecentLimit: c.recentLimit}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		// un rapport qui panique est un rapport raté, jamais un arrêt du service
		defer func() {
			if r := recover(); r != nil {
				c.onError(fmt.Errorf("panique pendant le rapport: %v", r))
			}
		}()
		if err := c.report(win); err != nil {
			c.onError(err)
		}
	}()
}

// Count retourne l'état courant du compteur.
func (c *Coordinator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Wait bloque jusqu'à la fin des rapports en cours (arrêt propre, tests).
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
