package telegram

import (
	"fmt"
	"strings"
)

// FormatPatternAlert renders a detected psychological pattern as a Markdown
// alert message.
func FormatPatternAlert(userID uint, patternType, severity, description, recommendation string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 *Pattern détecté* — `%s`\n", strings.ToUpper(patternType)))
	b.WriteString(fmt.Sprintf("*Utilisateur:* %d\n", userID))
	b.WriteString(fmt.Sprintf("*Sévérité:* %s\n", severity))
	b.WriteString(fmt.Sprintf("*Détail:* %s\n", description))
	if recommendation != "" {
		b.WriteString(fmt.Sprintf("💡 %s", recommendation))
	}
	return b.String()
}

// FormatLargeTransactionAlert renders an alert for a financial transaction
// above the notification threshold.
func FormatLargeTransactionAlert(userID uint, amount float64, reason string) string {
	var b strings.Builder
	b.WriteString("💰 *Transaction importante*\n")
	b.WriteString(fmt.Sprintf("*Utilisateur:* %d\n", userID))
	b.WriteString(fmt.Sprintf("*Montant:* %.2f€\n", amount))
	if reason != "" {
		b.WriteString(fmt.Sprintf("*Motif:* %s", reason))
	}
	return b.String()
}

// FormatTradeAlert renders a trade execution notification.
func FormatTradeAlert(userID uint, symbol, side string, quantity, price float64) string {
	icon := "🟢"
	if side == "sell" {
		icon = "🔴"
	}
	return fmt.Sprintf("%s *Trade exécuté* — `%s`\n*Utilisateur:* %d\n*Sens:* %s\n*Quantité:* %.4f @ %.2f€",
		icon, symbol, userID, side, quantity, price)
}
