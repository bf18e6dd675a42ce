package extract

import (
	"testing"
	"time"

	"finsignal/txengine/internal/ai"
	"finsignal/txengine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFields(t *testing.T) {
	amount := mustDecimal(t, "50")
	date := time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)

	t.Run("pattern fields win over AI fields", func(t *testing.T) {
		pattern := models.ExtractedFields{
			CardEnding:      "8770",
			Amount:          &amount,
			MerchantName:    "MerchantX",
			TransactionDate: &date,
			Currency:        "ILS",
			Provider:        models.ProviderVisaCal,
		}
		aiResp := ai.FieldResponse{
			CardEnding:      "9999",
			MerchantName:    "Something Else",
			Amount:          "123.45",
			TransactionDate: "2025-12-01",
		}

		merged := mergeFields(pattern, aiResp, "ILS")

		assert.Equal(t, "8770", merged.CardEnding)
		assert.Equal(t, "MerchantX", merged.MerchantName)
		assert.Equal(t, "50", merged.Amount.String())
		assert.Equal(t, date, *merged.TransactionDate)
		assert.Equal(t, models.ProviderVisaCal, merged.Provider)
		assert.Equal(t, 100, merged.Confidence)
	})

	t.Run("AI fills the gaps", func(t *testing.T) {
		pattern := models.ExtractedFields{Amount: &amount, Provider: models.ProviderUnknown}
		aiResp := ai.FieldResponse{
			CardEnding:      "1234",
			MerchantName:    "Cafe Gold",
			TransactionDate: "2026-01-05",
		}

		merged := mergeFields(pattern, aiResp, "ILS")

		assert.Equal(t, "1234", merged.CardEnding)
		assert.Equal(t, "Cafe Gold", merged.MerchantName)
		require.NotNil(t, merged.TransactionDate)
		assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), *merged.TransactionDate)
		assert.Equal(t, 100, merged.Confidence)
	})

	t.Run("AI amount parsed from number", func(t *testing.T) {
		merged := mergeFields(models.ExtractedFields{}, ai.FieldResponse{Amount: float64(19.99)}, "ILS")

		require.NotNil(t, merged.Amount)
		assert.Equal(t, "19.99", merged.Amount.String())
	})

	t.Run("negative AI amount stored as magnitude", func(t *testing.T) {
		merged := mergeFields(models.ExtractedFields{}, ai.FieldResponse{Amount: "-88.00"}, "ILS")

		require.NotNil(t, merged.Amount)
		assert.Equal(t, "88", merged.Amount.String())
	})

	t.Run("unparseable AI values are dropped", func(t *testing.T) {
		aiResp := ai.FieldResponse{Amount: "around fifty", TransactionDate: "yesterday"}

		merged := mergeFields(models.ExtractedFields{}, aiResp, "ILS")

		assert.Nil(t, merged.Amount)
		assert.Nil(t, merged.TransactionDate)
	})

	t.Run("currency defaults to local when text had none", func(t *testing.T) {
		merged := mergeFields(models.ExtractedFields{}, ai.FieldResponse{Currency: "USD"}, "ILS")

		// The AI currency is advisory only; the explicit symbol from
		// the text or the household default are the two trusted sources.
		assert.Equal(t, "ILS", merged.Currency)
	})

	t.Run("confidence recomputed from merged set", func(t *testing.T) {
		pattern := models.ExtractedFields{Amount: &amount, Confidence: 40}
		aiResp := ai.FieldResponse{MerchantName: "Wolt", Confidence: 95}

		merged := mergeFields(pattern, aiResp, "ILS")

		assert.Equal(t, models.WeightAmount+models.WeightMerchant, merged.Confidence)
	})
}
