package main

import (
	"context"
	"log"
	"os"
	"time"

	"hotel_feedback_back_end/internal/cache"
	"hotel_feedback_back_end/internal/config"
	"hotel_feedback_back_end/internal/database"
	"hotel_feedback_back_end/internal/handlers"
	"hotel_feedback_back_end/internal/report"
	"hotel_feedback_back_end/internal/routes"
	"hotel_feedback_back_end/internal/schema"
	"hotel_feedback_back_end/internal/services"
	"hotel_feedback_back_end/internal/store"
	"hotel_feedback_back_end/internal/trigger"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	cfg := config.Read()

	sch, err := schema.Variant(cfg.SchemaVariant)
	if err != nil {
		log.Fatalf("❌ SCHEMA_VARIANT invalide: %v", err)
	}
	log.Printf("✅ Schéma de notation '%s' (%d dimensions)", sch.Name, len(sch.Dimensions))

	if cfg.RecipientEmail == "" {
		log.Fatal("❌ RECIPIENT_EMAIL manquant dans .env : aucun destinataire pour les rapports")
	}

	database.ConnectDatabases()
	database.InitPreparedStatements()

	st := store.NewScyllaStore(os.Getenv("PROPERTY_ID"))
	reporter := services.NewReporter(st, sch, cfg)

	h := &handlers.ReviewHandler{
		Store:  st,
		Schema: sch,
		Ready:  database.Ready,
		Stats:  cachedStats(st, sch),
	}

	// Une seule politique de déclenchement active par déploiement
	switch cfg.TriggerPolicy {
	case trigger.PolicyThreshold:
		coord := trigger.NewCoordinator(cfg.ReportThreshold, cfg.RecentLimit, reporter.GenerateAndSend)
		h.OnInserted = coord.OnReviewInserted
		log.Printf("✅ Politique à seuil active (rapport toutes les %d soumissions)", cfg.ReportThreshold)
	case trigger.PolicySchedule:
		sched := trigger.NewScheduler(cfg.ScheduleHour, cfg.ScheduleMinute, cfg.RecentLimit, reporter.GenerateAndSend)
		sched.Start(context.Background())
		defer sched.Stop()
		log.Printf("✅ Politique planifiée active (tir quotidien/hebdomadaire/mensuel à %02d:%02d)", cfg.ScheduleHour, cfg.ScheduleMinute)
	default:
		log.Fatalf("❌ TRIGGER_POLICY invalide: %q (attendu: threshold ou schedule)", cfg.TriggerPolicy)
	}

	r := gin.Default()
	routes.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur feedback lancé sur le port", port)
	r.Run(":" + port)
}

// cachedStats construit la fonction de statistiques cumulées servie par
// GET /api/stats, avec cache Redis devant ScyllaDB.
func cachedStats(st store.ReviewStore, sch *schema.RatingSchema) func() (*cache.CachedStats, error) {
	compute := func() (*cache.CachedStats, error) {
		reviews, err := st.Since(time.Unix(0, 0))
		if err != nil {
			return nil, err
		}
		snap := report.Aggregate(sch, reviews)
		return &cache.CachedStats{
			Total:     snap.Total,
			Means:     snap.Means,
			Composite: report.Composite(sch, snap),
			UpdatedAt: time.Now(),
		}, nil
	}
	return func() (*cache.CachedStats, error) {
		return cache.GetStatsFromCache(compute)
	}
}
