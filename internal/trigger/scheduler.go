package trigger

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// scheduleJob est un déclencheur périodique autonome : son heure de tir et sa
// fenêtre de rétrospective lui sont propres.
type scheduleJob struct {
	name     string
	next     func(after time.Time) time.Time
	lookback func(now time.Time) time.Time
}

// Scheduler implémente la politique planifiée : trois minuteries
// indépendantes (quotidienne, hebdomadaire, mensuelle). Un échec sur l'une
// n'affecte jamais les autres. Pas de rattrapage : un tir manqué (processus
// arrêté) est simplement sauté.
type Scheduler struct {
	jobs        []scheduleJob
	recentLimit int
	report      ReportFunc
	onError     func(job string, err error)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler construit la politique planifiée. hour/minute est l'heure de
// tir locale commune ; l'hebdomadaire tire le lundi, le mensuel le 1er du
// mois. Les fenêtres suivent le calendrier (AddDate), pas des durées fixes.
func NewScheduler(hour, minute, recentLimit int, report ReportFunc) *Scheduler {
	return &Scheduler{
		jobs: []scheduleJob{
			{
				name:     "quotidien",
				next:     func(after time.Time) time.Time { return NextDaily(after, hour, minute) },
				lookback: func(now time.Time) time.Time { return now.AddDate(0, 0, -1) },
			},
			{
				name:     "hebdomadaire",
				next:     func(after time.Time) time.Time { return NextWeekly(after, time.Monday, hour, minute) },
				lookback: func(now time.Time) time.Time { return now.AddDate(0, 0, -7) },
			},
			{
				name:     "mensuel",
				next:     func(after time.Time) time.Time { return NextMonthly(after, 1, hour, minute) },
				lookback: func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
			},
		},
		recentLimit: recentLimit,
		report:      report,
		onError: func(job string, err error) {
			log.Printf("❌ Échec du rapport planifié %s: %v", job, err)
		},
	}
}

// SetErrorSink remplace le collecteur d'erreurs (observabilité).
func (s *Scheduler) SetErrorSink(fn func(job string, err error)) {
	if fn != nil {
		s.onError = fn
	}
}

// Start lance une goroutine par minuterie. À appeler une seule fois.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, j)
	}
	log.Printf("⏰ Planificateur démarré (%d minuteries)", len(s.jobs))
}

// Stop arrête les minuteries et attend la fin des tirs en cours.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runJob(ctx context.Context, j scheduleJob) {
	defer s.wg.Done()
	for {
		timer := time.NewTimer(time.Until(j.next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case now := <-timer.C:
			since := j.lookback(now)
			s.fire(j, Window{Label: j.name, Since: &since, RecentLimit: s.recentLimit})
		}
	}
}

// fire exécute un tir. Un rapport qui panique est un rapport raté, consigné
// comme une erreur — la minuterie reste vivante.
func (s *Scheduler) fire(j scheduleJob, win Window) {
	defer func() {
		if r := recover(); r != nil {
			s.onError(j.name, fmt.Errorf("panique pendant le rapport: %v", r))
		}
	}()
	if err := s.report(win); err != nil {
		s.onError(j.name, err)
	}
}

// NextDaily retourne la prochaine occurrence de hh:mm strictement après t.
func NextDaily(t time.Time, hour, minute int) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextWeekly retourne la prochaine occurrence du jour de semaine donné à hh:mm.
func NextWeekly(t time.Time, day time.Weekday, hour, minute int) time.Time {
	next := NextDaily(t, hour, minute)
	for next.Weekday() != day {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextMonthly retourne la prochaine occurrence du jour du mois donné à hh:mm.
func NextMonthly(t time.Time, dayOfMonth, hour, minute int) time.Time {
	next := time.Date(t.Year(), t.Month(), dayOfMonth, hour, minute, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}
