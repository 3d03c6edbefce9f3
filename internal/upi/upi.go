// Package upi builds UPI payment deep links so settlements can be paid
// directly from any UPI app.
package upi

import (
	"fmt"
	"net/url"
	"regexp"
)

const (
	payScheme   = "upi://pay"
	qrEndpoint  = "https://api.qrserver.com/v1/create-qr-code/"
	defaultNote = "Bill settlement via monEZ"
)

// UPI ids look like local@psp, e.g. alice@okhdfcbank.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)

// ValidID reports whether the string is a plausible UPI id.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// PaymentLink builds a upi://pay deep link for the given payee. UPI amounts
// are always INR with two decimals.
func PaymentLink(upiID, payeeName string, amount float64, note string) (string, error) {
	if !ValidID(upiID) {
		return "", fmt.Errorf("invalid UPI id %q", upiID)
	}
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	if payeeName == "" {
		payeeName = "monEZ Settlement"
	}
	if note == "" {
		note = defaultNote
	}

	params := url.Values{}
	params.Set("pa", upiID)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", note)

	return payScheme + "?" + params.Encode(), nil
}

// QRImageURL returns a URL that renders the link as a scannable QR image, for
// clients without a native UPI app.
func QRImageURL(link string, size int) string {
	if size <= 0 {
		size = 300
	}
	params := url.Values{}
	params.Set("size", fmt.Sprintf("%dx%d", size, size))
	params.Set("data", link)
	return qrEndpoint + "?" + params.Encode()
}
