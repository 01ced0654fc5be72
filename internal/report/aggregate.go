package report

import (
	"hotel_feedback_back_end/internal/models"
	"hotel_feedback_back_end/internal/schema"
)

// Snapshot est l'agrégat éphémère d'une fenêtre de soumissions. Recalculé à
// chaque rapport, jamais persisté.
type Snapshot struct {
	Total int
	// Means contient une entrée par dimension du schéma. nil = aucune note
	// renseignée pour cette dimension dans la fenêtre (distinct d'une fenêtre vide).
	Means map[string]*float64
}

// Aggregate réduit une fenêtre de soumissions en Snapshot. Déterministe,
// indépendant de l'ordre, ne modifie pas les entrées. Les champs manquants
// donnent nil, jamais une erreur.
func Aggregate(s *schema.RatingSchema, reviews []models.Review) Snapshot {
	snap := Snapshot{
		Total: len(reviews),
		Means: make(map[string]*float64, len(s.Dimensions)),
	}
	for _, dim := range s.Dimensions {
		var sum, n int
		for _, r := range reviews {
			if v := r.Score(dim.Key); v != nil {
				sum += *v
				n++
			}
		}
		if n == 0 {
			snap.Means[dim.Key] = nil
			continue
		}
		mean := float64(sum) / float64(n)
		snap.Means[dim.Key] = &mean
	}
	return snap
}

// Composite retourne la moyenne arithmétique non pondérée des moyennes
// renseignées. nil si aucune dimension n'a de donnée — le rendu affichera
// "—", jamais NaN.
func Composite(s *schema.RatingSchema, snap Snapshot) *float64 {
	var sum float64
	var n int
	for _, dim := range s.Dimensions {
		if m := snap.Means[dim.Key]; m != nil {
			sum += *m
			n++
		}
	}
	if n == 0 {
		return nil
	}
	c := sum / float64(n)
	return &c
}
