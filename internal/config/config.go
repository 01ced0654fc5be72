package config

import (
	"log"
	"os"
	"strconv"

	"hotel_feedback_back_end/internal/trigger"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Settings regroupe la configuration typée du service. Tout vient de
// l'environnement, avec des valeurs par défaut raisonnables.
type Settings struct {
	HotelName     string
	SchemaVariant string // standard | extended | operations

	TriggerPolicy   string // threshold | schedule
	ReportThreshold int    // politique à seuil : soumissions avant tir
	RecentLimit     int    // borne du tableau de détail
	ScheduleHour    int    // politique planifiée : heure de tir locale
	ScheduleMinute  int

	RecipientEmail string
	SenderEmail    string

	ReportsBucket string
}

// Read construit les Settings depuis l'environnement.
func Read() Settings {
	return Settings{
		HotelName:       getEnv("HOTEL_NAME", "Hôtel Riviera"),
		SchemaVariant:   getEnv("SCHEMA_VARIANT", "standard"),
		TriggerPolicy:   getEnv("TRIGGER_POLICY", trigger.PolicySchedule),
		ReportThreshold: getEnvInt("REPORT_THRESHOLD", 3),
		RecentLimit:     getEnvInt("REPORT_RECENT_LIMIT", 3),
		ScheduleHour:    getEnvInt("REPORT_SCHEDULE_HOUR", 8),
		ScheduleMinute:  getEnvInt("REPORT_SCHEDULE_MINUTE", 0),
		RecipientEmail:  getEnv("RECIPIENT_EMAIL", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@hotel-riviera.com"),
		ReportsBucket:   getEnv("MINIO_REPORTS_BUCKET", "guest-feedback-reports"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  %s=%q invalide, valeur par défaut %d utilisée", key, v, fallback)
		return fallback
	}
	return n
}
