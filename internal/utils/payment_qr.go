package utils

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// SepaPayload contenu EPC069-12 d'un virement
func SepaPayload(iban, bic, name, ref string, amount float64) string {
	return fmt.Sprintf("BCD\n002\n1\nSCT\n%s\n%s\n%s\nEUR%.2f\n\n\n%s", bic, name, iban, amount, ref)
}

// GenerateSepaQR renvoie une image PNG en data URI, prête pour un <img>
func GenerateSepaQR(iban, bic, name, ref string, amount float64) (string, error) {
	png, err := qrcode.Encode(SepaPayload(iban, bic, name, ref, amount), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
