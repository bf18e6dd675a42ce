package receipt

import (
	"strings"
	"testing"
	"time"

	"finsignal/txengine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReceipt = `<!DOCTYPE html>
<html>
<head>
<title>Spotify Receipt</title>
<style>.total { font-weight: bold; }</style>
</head>
<body>
<h1>Thanks for your payment</h1>
<p>Subscription: Premium Family</p>
<p class="total">Total: ₪19.99</p>
<script>trackOpen();</script>
</body>
</html>`

func TestParse(t *testing.T) {
	receipt, err := Parse(strings.NewReader(sampleReceipt))
	require.NoError(t, err)

	assert.Equal(t, "Spotify Receipt", receipt.Merchant, "title wins as the merchant source")
	assert.Equal(t, "19.99", receipt.Total)
	assert.Equal(t, "ILS", receipt.Currency)
	assert.Contains(t, receipt.Text, "Premium Family")
	assert.NotContains(t, receipt.Text, "trackOpen", "script content is not visible text")
	assert.NotContains(t, receipt.Text, "font-weight", "style content is not visible text")
}

func TestParseHeadingFallback(t *testing.T) {
	body := `<html><body><h1>Cafe Gold</h1><p>Amount charged: $12.50</p></body></html>`

	receipt, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "Cafe Gold", receipt.Merchant)
	assert.Equal(t, "12.50", receipt.Total)
	assert.Equal(t, "USD", receipt.Currency)
}

func TestParseNoTotalLine(t *testing.T) {
	body := `<html><body><h2>Newsletter</h2><p>Nothing was purchased.</p></body></html>`

	receipt, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "Newsletter", receipt.Merchant)
	assert.Empty(t, receipt.Total)
	assert.Empty(t, receipt.Currency)
}

func TestNotification(t *testing.T) {
	receivedAt := time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)

	t.Run("synthesizes a lead-in when merchant and total are known", func(t *testing.T) {
		r := Receipt{Merchant: "Spotify Receipt", Total: "19.99", Text: "Total: ₪19.99"}

		n := r.Notification(receivedAt)

		assert.Equal(t, models.SourceEmail, n.Source)
		assert.Equal(t, receivedAt, n.ReceivedAt)
		assert.True(t, strings.HasPrefix(n.Text, "payment of 19.99 at Spotify Receipt."))
		assert.Contains(t, n.Text, "Total: ₪19.99")
	})

	t.Run("falls back to the plain text", func(t *testing.T) {
		r := Receipt{Text: "some unstructured body"}

		n := r.Notification(receivedAt)

		assert.Equal(t, "some unstructured body", n.Text)
	})
}
