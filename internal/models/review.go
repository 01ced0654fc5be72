package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Review est une soumission de questionnaire client. Insérée une fois,
// jamais modifiée. L'ID timeuuid sert d'ordre de récence.
type Review struct {
	ID         gocql.UUID     `json:"id" db:"review_id"`
	PropertyID string         `json:"property_id" db:"property_id"`
	RoomNumber string         `json:"room_number" db:"room_number"`
	Scores     map[string]int `json:"scores" db:"scores"` // dimension absente = clé absente
	Comments   string         `json:"comments" db:"comments"`
	GuestName  string         `json:"guest_name,omitempty" db:"guest_name"`
	GuestEmail string         `json:"guest_email,omitempty" db:"guest_email"`
	GuestPhone string         `json:"guest_phone,omitempty" db:"guest_phone"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// Score retourne la note d'une dimension, nil si elle n'a pas été renseignée.
func (r Review) Score(key string) *int {
	if r.Scores == nil {
		return nil
	}
	v, ok := r.Scores[key]
	if !ok {
		return nil
	}
	return &v
}
