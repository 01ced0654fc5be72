package handlers

import (
	"log"
	"net/http"

	"hotel_feedback_back_end/internal/cache"
	"hotel_feedback_back_end/internal/models"
	"hotel_feedback_back_end/internal/schema"
	"hotel_feedback_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// ReviewHandler porte les dépendances des endpoints publics. La réponse de
// l'ingestion ne dépend que de la persistance : le déclencheur de rapport
// est invoqué après coup, sans jamais être attendu.
type ReviewHandler struct {
	Store  store.ReviewStore
	Schema *schema.RatingSchema

	Ready      func() bool
	OnInserted func() // hook de la politique à seuil, nil sinon
	Stats      func() (*cache.CachedStats, error)
}

// CreateReview reçoit une soumission de questionnaire
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	if h.Ready != nil && !h.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Le service n'est pas encore prêt"})
		return
	}

	var req struct {
		RoomNumber string         `json:"room_number" binding:"required"`
		Scores     map[string]int `json:"scores" binding:"required"`
		Comments   string         `json:"comments"`
		GuestName  string         `json:"guest_name"`
		GuestEmail string         `json:"guest_email"`
		GuestPhone string         `json:"guest_phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données invalides", "details": err.Error()})
		return
	}

	// Une dimension absente est tolérée (dégradée en « pas de donnée »),
	// une dimension inconnue ou une note hors domaine est rejetée.
	for key, v := range req.Scores {
		if !h.Schema.HasDimension(key) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Dimension inconnue: " + key})
			return
		}
		if !h.Schema.IsValidValue(v) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Note hors domaine pour " + key})
			return
		}
	}

	review := models.Review{
		RoomNumber: req.RoomNumber,
		Scores:     req.Scores,
		Comments:   req.Comments,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
	}

	if err := h.Store.Insert(&review); err != nil {
		log.Printf("❌ Erreur insertion soumission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur serveur, réessayez plus tard"})
		return
	}

	cache.InvalidateStatsCache()

	// fire-and-forget : la réponse part sans attendre un éventuel rapport
	if h.OnInserted != nil {
		h.OnInserted()
	}

	log.Printf("📝 Soumission reçue (chambre %s)", review.RoomNumber)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Merci ! Votre évaluation a bien été enregistrée.", "id": review.ID.String()})
}

// GetStats retourne l'instantané cumulatif courant (mis en cache Redis)
func (h *ReviewHandler) GetStats(c *gin.Context) {
	if h.Ready != nil && !h.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Le service n'est pas encore prêt"})
		return
	}

	stats, err := h.Stats()
	if err != nil {
		log.Printf("❌ Erreur lecture statistiques: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lecture statistiques"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      stats.Total,
		"means":      stats.Means,
		"composite":  stats.Composite,
		"updated_at": stats.UpdatedAt,
	})
}

// Health expose l'état de préparation du service
func (h *ReviewHandler) Health(c *gin.Context) {
	if h.Ready != nil && !h.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
