package services

import (
	"fmt"
	"log"
	"time"

	"hotel_feedback_back_end/internal/config"
	"hotel_feedback_back_end/internal/models"
	"hotel_feedback_back_end/internal/report"
	"hotel_feedback_back_end/internal/schema"
	"hotel_feedback_back_end/internal/store"
	"hotel_feedback_back_end/internal/trigger"
	"hotel_feedback_back_end/internal/utils"

	"github.com/google/uuid"
)

// Reporter est le pipeline complet d'un rapport : lecture de la fenêtre,
// agrégation, composition, rendu PDF, archivage, envoi. Chaque exécution est
// autonome (son propre navigateur, son propre client SMTP) — les rapports
// peuvent se chevaucher sans exclusion mutuelle.
type Reporter struct {
	Store    store.ReviewStore
	Schema   *schema.RatingSchema
	Settings config.Settings

	// collaborateurs externes, remplaçables en test
	RenderPDF func(html string) ([]byte, error)
	SendMail  func(from, to, subject, htmlBody string, pdf []byte, attachmentName string) error
	Archive   func(objectName string, data []byte) error
	Now       func() time.Time
}

func NewReporter(st store.ReviewStore, sch *schema.RatingSchema, cfg config.Settings) *Reporter {
	return &Reporter{
		Store:     st,
		Schema:    sch,
		Settings:  cfg,
		RenderPDF: utils.RenderHTMLToPDF,
		SendMail:  utils.SendReportEmail,
		Archive:   ArchiveReportPDF,
		Now:       time.Now,
	}
}

// GenerateAndSend exécute le pipeline pour la fenêtre demandée. Une fenêtre
// vide est un résultat normal : aucun rendu, aucun envoi, pas d'erreur.
// Toute autre erreur remonte à l'appelant (le déclencheur la consigne).
func (r *Reporter) GenerateAndSend(win trigger.Window) error {
	runID := uuid.New().String()[:8]

	// lecture ponctuelle et cohérente de la fenêtre
	var reviews []models.Review
	var err error
	if win.Since != nil {
		reviews, err = r.Store.Since(*win.Since)
	} else {
		reviews, err = r.Store.Recent(win.RecentLimit)
	}
	if err != nil {
		return fmt.Errorf("[rapport %s] lecture fenêtre %s: %v", runID, win.Label, err)
	}

	if len(reviews) == 0 {
		log.Printf("💤 [rapport %s] Fenêtre %s vide, rien à envoyer", runID, win.Label)
		return nil
	}

	snap := report.Aggregate(r.Schema, reviews)
	rep := report.Compose(r.Schema, snap, reviews, win.RecentLimit, win.Label, r.Now())

	log.Printf("📬 [rapport %s] Génération du rapport %s (%d soumissions)", runID, win.Label, snap.Total)

	detailed := report.RenderDetailedHTML(r.Settings.HotelName, rep)
	condensed := report.RenderCondensedHTML(r.Settings.HotelName, rep)

	pdf, err := r.RenderPDF(detailed)
	if err != nil {
		return fmt.Errorf("[rapport %s] rendu PDF: %v", runID, err)
	}
	log.Printf("📄 [rapport %s] PDF généré (%d octets)", runID, len(pdf))

	filename := fmt.Sprintf("guest-feedback-report-%s.pdf", rep.GeneratedAt.Format("2006-01-02"))

	// l'archivage est best-effort : son échec ne bloque pas l'envoi
	objectName := fmt.Sprintf("%s/%s-%s.pdf", win.Label, rep.GeneratedAt.Format("2006-01-02"), runID)
	if err := r.Archive(objectName, pdf); err != nil {
		log.Printf("⚠️ [rapport %s] Archivage MinIO échoué: %v", runID, err)
	}

	subject := fmt.Sprintf("📊 Rapport de satisfaction %s (%d soumissions)", win.Label, snap.Total)
	if err := r.SendMail(r.Settings.SenderEmail, r.Settings.RecipientEmail, subject, condensed, pdf, filename); err != nil {
		return fmt.Errorf("[rapport %s] envoi mail: %v", runID, err)
	}

	log.Printf("✅ [rapport %s] Rapport %s envoyé à %s", runID, win.Label, r.Settings.RecipientEmail)
	return nil
}
