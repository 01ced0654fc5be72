package report

import (
	"fmt"
	"time"

	"hotel_feedback_back_end/internal/models"
	"hotel_feedback_back_end/internal/schema"
)

// SummaryCell est la moyenne d'une dimension avec son appréciation.
type SummaryCell struct {
	Key   string
	Label string
	Mean  *float64
	Tier  schema.Tier
}

// DetailCell est la note d'une dimension pour une soumission donnée.
type DetailCell struct {
	Key   string
	Label string
	Value *int
	Tier  schema.Tier
}

// DetailRow est une ligne du tableau de détail (une soumission récente).
type DetailRow struct {
	RoomNumber string
	GuestName  string
	Cells      []DetailCell
	Comments   string
	CreatedAt  time.Time
}

// Report est la valeur autoportante d'un rapport : construite, rendue,
// envoyée, puis jetée. Aucune référence vers un état mutable — le rendu
// peut être différé sans risque.
type Report struct {
	GeneratedAt   time.Time
	WindowLabel   string
	Snapshot      Snapshot
	Composite     *float64
	CompositeTier schema.Tier
	Summary       []SummaryCell
	Rows          []DetailRow
	SchemaName    string
}

// Compose construit un Report à partir d'un agrégat et des soumissions les
// plus récentes (déjà triées de la plus récente à la plus ancienne). Le
// tableau de détail est borné à maxRows. Ne peut pas échouer sur le contenu
// des données.
func Compose(s *schema.RatingSchema, snap Snapshot, recent []models.Review, maxRows int, windowLabel string, now time.Time) Report {
	if maxRows > 0 && len(recent) > maxRows {
		recent = recent[:maxRows]
	}

	rep := Report{
		GeneratedAt: now,
		WindowLabel: windowLabel,
		Snapshot:    snap,
		SchemaName:  s.Name,
	}

	rep.Composite = Composite(s, snap)
	rep.CompositeTier = s.DescribeMean(rep.Composite)

	for _, dim := range s.Dimensions {
		mean := snap.Means[dim.Key]
		rep.Summary = append(rep.Summary, SummaryCell{
			Key:   dim.Key,
			Label: dim.Label,
			Mean:  mean,
			Tier:  s.DescribeMean(mean),
		})
	}

	for _, r := range recent {
		row := DetailRow{
			RoomNumber: r.RoomNumber,
			GuestName:  r.GuestName,
			Comments:   r.Comments,
			CreatedAt:  r.CreatedAt,
		}
		for _, dim := range s.Dimensions {
			v := r.Score(dim.Key)
			row.Cells = append(row.Cells, DetailCell{
				Key:   dim.Key,
				Label: dim.Label,
				Value: v,
				Tier:  s.Describe(v),
			})
		}
		rep.Rows = append(rep.Rows, row)
	}

	return rep
}

// FormatMean formate une moyenne sur deux décimales, "—" si absente.
// Partagé par les deux rendus pour qu'ils ne divergent jamais sur les chiffres.
func FormatMean(m *float64) string {
	if m == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *m)
}
