// Package trigger décide quand déclencher la génération d'un rapport et sur
// quelle fenêtre de données. Deux politiques interchangeables — une seule est
// active par déploiement, choisie par configuration.
package trigger

import "time"

const (
	PolicyThreshold = "threshold"
	PolicySchedule  = "schedule"
)

// Window décrit la fenêtre de données d'un rapport.
type Window struct {
	Label       string     // libellé du déclencheur (instantané, quotidien…)
	Since       *time.Time // nil = fenêtre « N plus récents » (politique à seuil)
	RecentLimit int        // borne du tableau de détail
}

// ReportFunc est le pipeline de génération/envoi injecté dans les deux
// politiques. Une erreur est consignée par le déclencheur, jamais propagée.
type ReportFunc func(win Window) error
