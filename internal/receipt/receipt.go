// Package receipt extracts transaction signals from HTML email receipts.
// The extracted text flows through the same extraction pipeline as any
// other notification, on the trusted path.
package receipt

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"finsignal/txengine/internal/models"

	"golang.org/x/net/html"
)

// Receipt is the raw signal pulled out of an HTML email body.
type Receipt struct {
	Merchant string
	Total    string
	Currency string
	Text     string
}

var (
	totalRe = regexp.MustCompile(`(?i)(?:total|amount|charged|sum)[^\d₪$€£]{0,12}(₪|\$|€|£)?\s*([\d,]+(?:\.\d{1,2})?)`)

	symbolCurrencies = map[string]string{
		"₪": "ILS",
		"$": "USD",
		"€": "EUR",
		"£": "GBP",
	}
)

// Parse walks the HTML document, collects its visible text and pulls out
// the merchant (title or first heading) and the total line.
func Parse(r io.Reader) (Receipt, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Receipt{}, fmt.Errorf("error parsing receipt HTML: %w", err)
	}

	var receipt Receipt
	var textParts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "title", "h1", "h2":
				if receipt.Merchant == "" {
					receipt.Merchant = strings.TrimSpace(textContent(n))
				}
			}
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				textParts = append(textParts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	receipt.Text = strings.Join(textParts, " ")
	if m := totalRe.FindStringSubmatch(receipt.Text); len(m) > 2 {
		receipt.Total = m[2]
		receipt.Currency = symbolCurrencies[m[1]]
	}
	return receipt, nil
}

// Notification converts the receipt into a raw notification for the
// extraction pipeline. Receipt ingestion uses the trusted path, so the
// trigger pre-filter does not apply.
func (r Receipt) Notification(receivedAt time.Time) models.RawNotification {
	text := r.Text
	if r.Merchant != "" && r.Total != "" {
		// A synthesized lead-in keeps the pattern rules effective even on
		// sparse receipt bodies.
		text = fmt.Sprintf("payment of %s at %s. %s", r.Total, r.Merchant, r.Text)
	}
	return models.RawNotification{
		Text:       text,
		Source:     models.SourceEmail,
		ReceivedAt: receivedAt,
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
