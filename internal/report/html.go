package report

import (
	"fmt"
	"html"
	"strings"
)

// Les deux rendus ci-dessous sont des projections pures du même Report :
// mêmes chiffres, densités différentes. RenderDetailedHTML produit la page
// imprimable (pièce jointe PDF), RenderCondensedHTML le corps du mail.

const maxScore = 5

// Une note hors domaine (donnée historique corrompue) dégrade en neutre,
// comme Describe — le rendu ne doit jamais échouer sur le contenu.
func stars(v *int) string {
	if v == nil || *v < 0 || *v > maxScore {
		return "—"
	}
	return strings.Repeat("★", *v) + strings.Repeat("☆", maxScore-*v)
}

func progressWidth(m *float64) float64 {
	if m == nil || *m < 0 {
		return 0
	}
	if *m > maxScore {
		return 100
	}
	return *m / maxScore * 100
}

// RenderDetailedHTML rend la page complète du rapport : en-tête, cartes de
// synthèse avec barres de progression, tableau détaillé des dernières
// soumissions. Mise en page pensée pour une impression A4.
func RenderDetailedHTML(hotelName string, rep Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<style>
    :root { --primary-color: #003c71; --secondary-color: #d4a75c; --text-color: #333; --light-gray: #f8f9fa; --border-color: #dee2e6; }
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 0; padding: 0; background-color: #fff; color: var(--text-color); -webkit-print-color-adjust: exact; }
    .page { padding: 40px; background: white; }
    .header { display: flex; justify-content: space-between; align-items: center; border-bottom: 3px solid var(--primary-color); padding-bottom: 20px; }
    .header-logo { font-size: 28px; font-weight: 700; color: var(--primary-color); }
    .header-info { text-align: right; }
    .header-info h1 { margin: 0; font-size: 24px; color: var(--primary-color); }
    .header-info p { margin: 5px 0 0; color: #6c757d; }
    .section-title { font-size: 22px; font-weight: 700; color: var(--primary-color); border-bottom: 2px solid var(--secondary-color); padding-bottom: 10px; margin-top: 40px; margin-bottom: 20px; }
    .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 20px; margin-bottom: 30px; }
    .summary-card { background-color: var(--light-gray); border: 1px solid var(--border-color); border-radius: 12px; padding: 20px; text-align: center; }
    .summary-card h3 { margin: 0 0 10px 0; font-size: 16px; color: var(--primary-color); font-weight: 500; }
    .summary-card .score { font-size: 36px; font-weight: 700; color: var(--secondary-color); }
    .summary-card .score small { font-size: 18px; color: #6c757d; }
    .summary-card .tier { font-size: 13px; font-weight: 600; margin-top: 6px; }
    .progress-bar-container { width: 100%%; background-color: #e9ecef; border-radius: 5px; margin-top: 10px; height: 10px; }
    .progress-bar { height: 100%%; border-radius: 5px; background-color: var(--primary-color); }
    .review-table { width: 100%%; border-collapse: collapse; margin-top: 20px; font-size: 12px; }
    .review-table th, .review-table td { border: 1px solid var(--border-color); padding: 10px; text-align: center; }
    .review-table thead { background-color: var(--primary-color); color: white; font-weight: 700; }
    .review-table tbody tr:nth-child(even) { background-color: var(--light-gray); }
    .review-table .stars { color: var(--secondary-color); font-size: 16px; white-space: nowrap; }
    .comments-cell { text-align: left !important; max-width: 250px; white-space: pre-wrap; word-wrap: break-word; }
    .footer { text-align: center; margin-top: 50px; padding-top: 20px; border-top: 1px solid var(--border-color); font-size: 12px; color: #999; }
</style>
</head>
<body>
<div class="page">
    <div class="header">
        <div class="header-logo">%s</div>
        <div class="header-info">
            <h1>Rapport de satisfaction — %s</h1>
            <p>Édité le %s</p>
        </div>
    </div>
    <div class="section-title">Synthèse générale</div>
    <div class="summary-grid">
        <div class="summary-card">
            <h3>Soumissions reçues</h3>
            <div class="score">%d</div>
        </div>
        <div class="summary-card">
            <h3>Moyenne générale</h3>
            <div class="score">%s<small>/5</small></div>
            <div class="tier" style="color: %s;">%s</div>
        </div>
    </div>
    <div class="summary-grid">`,
		html.EscapeString(hotelName),
		html.EscapeString(rep.WindowLabel),
		rep.GeneratedAt.Format("02/01/2006 15:04"),
		rep.Snapshot.Total,
		FormatMean(rep.Composite),
		rep.CompositeTier.Color,
		rep.CompositeTier.Label,
	))

	for _, cell := range rep.Summary {
		b.WriteString(fmt.Sprintf(`
        <div class="summary-card">
            <h3>%s</h3>
            <div class="score">%s</div>
            <div class="tier" style="color: %s;">%s</div>
            <div class="progress-bar-container"><div class="progress-bar" style="width: %.0f%%;"></div></div>
        </div>`,
			html.EscapeString(cell.Label),
			FormatMean(cell.Mean),
			cell.Tier.Color,
			cell.Tier.Label,
			progressWidth(cell.Mean),
		))
	}

	b.WriteString(fmt.Sprintf(`
    </div>
    <div class="section-title">Détail des %d dernières soumissions</div>
    <table class="review-table">
        <thead>
            <tr>
                <th>Chambre</th>`, len(rep.Rows)))

	for _, cell := range rep.Summary {
		b.WriteString(fmt.Sprintf("<th>%s</th>", html.EscapeString(cell.Label)))
	}
	b.WriteString(`<th class="comments-cell">Commentaires</th>
            </tr>
        </thead>
        <tbody>`)

	for _, row := range rep.Rows {
		b.WriteString(fmt.Sprintf(`
            <tr>
                <td>%s</td>`, html.EscapeString(row.RoomNumber)))
		for _, cell := range row.Cells {
			b.WriteString(fmt.Sprintf(`<td class="stars" title="%s">%s</td>`, cell.Tier.Label, stars(cell.Value)))
		}
		comment := "<em>—</em>"
		if row.Comments != "" {
			comment = html.EscapeString(row.Comments)
		}
		b.WriteString(fmt.Sprintf(`<td class="comments-cell">%s</td>
            </tr>`, comment))
	}

	b.WriteString(fmt.Sprintf(`
        </tbody>
    </table>
    <div class="footer">
        <p>© %d %s | Rapport généré automatiquement par le système de satisfaction client.</p>
    </div>
</div>
</body>
</html>`, rep.GeneratedAt.Year(), html.EscapeString(hotelName)))

	return b.String()
}

// RenderCondensedHTML rend le corps du mail : synthèse et aperçu abrégé des
// dernières soumissions, sans les tableaux complets.
func RenderCondensedHTML(hotelName string, rep Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
<table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
    <tr><td style="padding: 40px 20px;">
        <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
            <tr>
                <td style="background: linear-gradient(135deg, #003c71 0%%, #00509e 100%%); padding: 30px; text-align: center; border-radius: 12px 12px 0 0;">
                    <h1 style="margin: 0; color: #ffffff; font-size: 24px;">📊 %s</h1>
                    <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 14px; opacity: 0.9;">Rapport de satisfaction — %s · %s</p>
                </td>
            </tr>
            <tr>
                <td style="padding: 30px;">
                    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f8f9fa; border-radius: 8px; margin-bottom: 20px;">
                        <tr>
                            <td style="padding: 20px; text-align: center; width: 50%%;">
                                <p style="margin: 0; color: #6c757d; font-size: 12px; text-transform: uppercase;">Soumissions</p>
                                <p style="margin: 5px 0 0 0; color: #003c71; font-size: 32px; font-weight: 700;">%d</p>
                            </td>
                            <td style="padding: 20px; text-align: center; width: 50%%;">
                                <p style="margin: 0; color: #6c757d; font-size: 12px; text-transform: uppercase;">Moyenne générale</p>
                                <p style="margin: 5px 0 0 0; color: %s; font-size: 32px; font-weight: 700;">%s<span style="font-size: 16px; color: #6c757d;">/5</span></p>
                                <p style="margin: 2px 0 0 0; color: %s; font-size: 13px; font-weight: 600;">%s</p>
                            </td>
                        </tr>
                    </table>
                    <table role="presentation" style="width: 100%%; border-collapse: collapse;">`,
		html.EscapeString(hotelName),
		html.EscapeString(rep.WindowLabel),
		rep.GeneratedAt.Format("02/01/2006"),
		rep.Snapshot.Total,
		rep.CompositeTier.Color,
		FormatMean(rep.Composite),
		rep.CompositeTier.Color,
		rep.CompositeTier.Label,
	))

	for _, cell := range rep.Summary {
		b.WriteString(fmt.Sprintf(`
                        <tr>
                            <td style="padding: 6px 0; color: #333; font-size: 14px;">%s</td>
                            <td style="padding: 6px 0; text-align: right; font-size: 14px; font-weight: 600; color: %s;">%s — %s</td>
                        </tr>`,
			html.EscapeString(cell.Label),
			cell.Tier.Color,
			FormatMean(cell.Mean),
			cell.Tier.Label,
		))
	}

	b.WriteString(`
                    </table>
                    <h3 style="margin: 25px 0 10px 0; color: #003c71; font-size: 16px;">Dernières soumissions</h3>`)

	for _, row := range rep.Rows {
		comment := row.Comments
		if len([]rune(comment)) > 80 {
			comment = string([]rune(comment)[:80]) + "…"
		}
		if comment == "" {
			comment = "—"
		}
		b.WriteString(fmt.Sprintf(`
                    <p style="margin: 0 0 8px 0; padding: 10px; background-color: #f8f9fa; border-radius: 6px; font-size: 13px; color: #333;">
                        <strong>Chambre %s</strong> · %s
                    </p>`,
			html.EscapeString(row.RoomNumber),
			html.EscapeString(comment),
		))
	}

	b.WriteString(`
                    <p style="margin: 25px 0 0 0; color: #6c757d; font-size: 13px;">Le rapport détaillé est en pièce jointe (PDF).</p>
                </td>
            </tr>
            <tr>
                <td style="padding: 20px 30px; background-color: #f8f9fa; border-radius: 0 0 12px 12px; text-align: center;">
                    <p style="margin: 0; color: #999999; font-size: 12px;">Cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
                </td>
            </tr>
        </table>
    </td></tr>
</table>
</body>
</html>`)

	return b.String()
}
