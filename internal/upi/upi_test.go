package upi

import (
	"net/url"
	"strings"
	"testing"
)

func TestPaymentLink(t *testing.T) {
	link, err := PaymentLink("alice@okhdfcbank", "Alice", 123.456, "Dinner")
	if err != nil {
		t.Fatalf("payment link: %v", err)
	}

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("unexpected scheme: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	q := parsed.Query()
	if q.Get("pa") != "alice@okhdfcbank" {
		t.Fatalf("unexpected payee: %s", q.Get("pa"))
	}
	if q.Get("am") != "123.46" {
		t.Fatalf("amount not rounded to two decimals: %s", q.Get("am"))
	}
	if q.Get("cu") != "INR" {
		t.Fatalf("unexpected currency: %s", q.Get("cu"))
	}
	if q.Get("tn") != "Dinner" {
		t.Fatalf("unexpected note: %s", q.Get("tn"))
	}
}

func TestPaymentLinkDefaults(t *testing.T) {
	link, err := PaymentLink("bob@upi", "", 50, "")
	if err != nil {
		t.Fatalf("payment link: %v", err)
	}
	parsed, _ := url.Parse(link)
	q := parsed.Query()
	if q.Get("pn") != "monEZ Settlement" {
		t.Fatalf("unexpected default payee name: %s", q.Get("pn"))
	}
	if q.Get("tn") != defaultNote {
		t.Fatalf("unexpected default note: %s", q.Get("tn"))
	}
}

func TestPaymentLinkRejectsBadInput(t *testing.T) {
	if _, err := PaymentLink("not-a-upi-id", "Alice", 10, ""); err == nil {
		t.Fatal("expected error for invalid UPI id")
	}
	if _, err := PaymentLink("alice@upi", "Alice", 0, ""); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestValidID(t *testing.T) {
	valid := []string{"alice@okhdfcbank", "bob.smith@paytm", "a-b_c@upi"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Fatalf("expected %q to be valid", id)
		}
	}
	invalid := []string{"", "alice", "@upi", "alice@", "alice@up1", "a@b@c"}
	for _, id := range invalid {
		if ValidID(id) {
			t.Fatalf("expected %q to be invalid", id)
		}
	}
}

func TestQRImageURL(t *testing.T) {
	link := "upi://pay?pa=alice%40upi"
	qr := QRImageURL(link, 0)

	parsed, err := url.Parse(qr)
	if err != nil {
		t.Fatalf("parse qr url: %v", err)
	}
	if parsed.Query().Get("size") != "300x300" {
		t.Fatalf("unexpected default size: %s", parsed.Query().Get("size"))
	}
	if parsed.Query().Get("data") != link {
		t.Fatalf("link not embedded: %s", parsed.Query().Get("data"))
	}
}
