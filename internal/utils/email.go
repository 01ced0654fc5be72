package utils

import (
	"bytes"
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

// SendReportEmail envoie le rapport : corps HTML condensé et rendu détaillé
// en pièce jointe PDF. Un client SMTP est ouvert par envoi — les rapports
// simultanés ne partagent aucune ressource.
func SendReportEmail(from, to, subject, htmlBody string, pdfAttachment []byte, attachmentName string) error {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader(attachmentName, bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi du rapport à", to)
	return client.DialAndSend(msg)
}
