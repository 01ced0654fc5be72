// Package store est le collaborateur de persistance : insertion en
// append-only et lectures par récence ou par fenêtre temporelle.
package store

import (
	"fmt"
	"time"

	"hotel_feedback_back_end/internal/database"
	"hotel_feedback_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ReviewStore est le contrat consommé par l'ingestion et le pipeline de
// rapports. Les lectures retournent toujours les soumissions de la plus
// récente à la plus ancienne.
type ReviewStore interface {
	Insert(r *models.Review) error
	Recent(limit int) ([]models.Review, error)
	Since(since time.Time) ([]models.Review, error)
}

// ScyllaStore implémente ReviewStore sur la table reviews_by_property.
type ScyllaStore struct {
	PropertyID string
}

func NewScyllaStore(propertyID string) *ScyllaStore {
	if propertyID == "" {
		propertyID = "main"
	}
	return &ScyllaStore{PropertyID: propertyID}
}

// Insert persiste une soumission. L'ID timeuuid est attribué ici : il porte
// l'ordre d'insertion utilisé par les lectures de récence.
func (s *ScyllaStore) Insert(r *models.Review) error {
	r.ID = gocql.TimeUUID()
	r.PropertyID = s.PropertyID
	r.CreatedAt = time.Now()

	q := database.GetPreparedInsertReview()
	if q == nil {
		session, err := database.GetFeedbackSession()
		if err != nil {
			return fmt.Errorf("session feedback indisponible: %v", err)
		}
		q = session.Query(`INSERT INTO reviews_by_property
			(property_id, review_id, room_number, scores, comments, guest_name, guest_email, guest_phone, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	}

	return q.Bind(r.PropertyID, r.ID, r.RoomNumber, r.Scores, r.Comments,
		r.GuestName, r.GuestEmail, r.GuestPhone, r.CreatedAt).Exec()
}

// Recent retourne les limit soumissions les plus récentes.
func (s *ScyllaStore) Recent(limit int) ([]models.Review, error) {
	q := database.GetPreparedRecentReviews()
	if q == nil {
		session, err := database.GetFeedbackSession()
		if err != nil {
			return nil, fmt.Errorf("session feedback indisponible: %v", err)
		}
		q = session.Query(`SELECT review_id, room_number, scores, comments, guest_name, created_at
			FROM reviews_by_property WHERE property_id = ? LIMIT ?`)
	}

	return s.scanReviews(q.Bind(s.PropertyID, limit).Iter())
}

// Since retourne toutes les soumissions dont l'insertion est postérieure à
// since, les plus récentes d'abord.
func (s *ScyllaStore) Since(since time.Time) ([]models.Review, error) {
	q := database.GetPreparedReviewsInWindow()
	if q == nil {
		session, err := database.GetFeedbackSession()
		if err != nil {
			return nil, fmt.Errorf("session feedback indisponible: %v", err)
		}
		q = session.Query(`SELECT review_id, room_number, scores, comments, guest_name, created_at
			FROM reviews_by_property WHERE property_id = ? AND review_id >= minTimeuuid(?)`)
	}

	return s.scanReviews(q.Bind(s.PropertyID, since).Iter())
}

func (s *ScyllaStore) scanReviews(iter *gocql.Iter) ([]models.Review, error) {
	var reviews []models.Review
	var r models.Review
	var scores map[string]int

	for iter.Scan(&r.ID, &r.RoomNumber, &scores, &r.Comments, &r.GuestName, &r.CreatedAt) {
		r.PropertyID = s.PropertyID
		r.Scores = scores
		reviews = append(reviews, r)
		scores = nil
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("erreur lecture soumissions: %v", err)
	}
	return reviews, nil
}
