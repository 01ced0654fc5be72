package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes
	stmtInsertReview    *gocql.Query
	stmtRecentReviews   *gocql.Query
	stmtReviewsInWindow *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetFeedbackSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		// Insertion d'une soumission
		stmtInsertReview = session.Query(`INSERT INTO reviews_by_property
			(property_id, review_id, room_number, scores, comments, guest_name, guest_email, guest_phone, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		// Les N soumissions les plus récentes (le clustering DESC fait le tri)
		stmtRecentReviews = session.Query(`SELECT review_id, room_number, scores, comments, guest_name, created_at
			FROM reviews_by_property WHERE property_id = ? LIMIT ?`)

		// Toutes les soumissions depuis un instant donné, les plus récentes d'abord
		stmtReviewsInWindow = session.Query(`SELECT review_id, room_number, scores, comments, guest_name, created_at
			FROM reviews_by_property WHERE property_id = ? AND review_id >= minTimeuuid(?)`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedInsertReview() *gocql.Query {
	return stmtInsertReview
}

func GetPreparedRecentReviews() *gocql.Query {
	return stmtRecentReviews
}

func GetPreparedReviewsInWindow() *gocql.Query {
	return stmtReviewsInWindow
}
