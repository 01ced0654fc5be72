package services

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"hotel_feedback_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// ArchiveReportPDF conserve une copie du PDF généré dans le bucket des
// rapports. Un envoi de mail raté ne perd pas le rapport : l'artefact reste
// récupérable par les opérateurs.
func ArchiveReportPDF(objectName string, data []byte) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_REPORTS_BUCKET")
	if bucket == "" {
		bucket = "guest-feedback-reports"
	}

	_, err := database.MinIO.PutObject(context.Background(), bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	return err
}
