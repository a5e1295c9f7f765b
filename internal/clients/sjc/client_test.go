package sjc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrices_ParsesEnvelope(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"method":      r.PostForm.Get("method"),
			"goldPriceId": r.PostForm.Get("goldPriceId"),
			"fromDate":    r.PostForm.Get("fromDate"),
			"toDate":      r.PostForm.Get("toDate"),
		}
		w.Header().Set("Content-Type", "application/json")
		// BuyValue/SellValue are JSON numbers; Buy/Sell are comma-grouped
		// display strings the client ignores.
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"Id": 1, "GroupDate": "/Date(1762189200000)/", "TypeName": "Vàng SJC 1L", "BranchName": "Hồ Chí Minh", "Buy": "88,500,000", "BuyValue": 88500000.0, "Sell": "90,200,000", "SellValue": 90200000.0},
				{"Id": 1, "GroupDate": "/Date(1762275600000)/", "TypeName": "Vàng SJC 1L", "BranchName": "Hồ Chí Minh", "Buy": "88,700,000", "BuyValue": 88700000.0, "Sell": "90,400,000", "SellValue": 90400000.0}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

	history, err := client.GetPrices(context.Background(), "1", from, to)
	require.NoError(t, err)

	assert.Equal(t, "GetGoldPriceHistory", gotForm["method"])
	assert.Equal(t, "1", gotForm["goldPriceId"])
	assert.Equal(t, "03/11/2025", gotForm["fromDate"])
	assert.Equal(t, "05/11/2025", gotForm["toDate"])

	require.Len(t, history.Data, 2)
	assert.Equal(t, int64(1762189200), history.Data[0].Timestamp)
	assert.Equal(t, 88_500_000.0, history.Data[0].Buy)
	assert.Equal(t, 90_200_000.0, history.Data[0].Sell)
	assert.Equal(t, "Vàng SJC 1L", history.Data[0].TypeName)

	// Prices are already full VND per tael; no scaling applies.
	assert.Equal(t, float64(1), history.Metadata.PriceScale)
	last, ok := history.LastSell()
	require.True(t, ok)
	assert.Equal(t, 90_400_000.0, last)
}

func TestGetPrices_UnsuccessfulResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	_, err := client.GetPrices(context.Background(), "1", from, from.AddDate(0, 0, 1))
	assert.ErrorContains(t, err, "unsuccessful")
}

func TestGetPrices_Validation(t *testing.T) {
	client := NewClient()
	ctx := context.Background()
	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	_, err := client.GetPrices(ctx, "", from, from.AddDate(0, 0, 1))
	assert.ErrorContains(t, err, "gold type")

	_, err = client.GetPrices(ctx, "1", from, from)
	assert.ErrorContains(t, err, "before")
}

func TestParseDotNetDate(t *testing.T) {
	assert.Equal(t, int64(1762275600), parseDotNetDate("/Date(1762275600000)/"))
	assert.Equal(t, int64(0), parseDotNetDate("2025-11-04"))
	assert.Equal(t, int64(0), parseDotNetDate("/Date()/"))
	assert.Equal(t, int64(0), parseDotNetDate(""))
}

func TestSource(t *testing.T) {
	assert.Equal(t, "sjc", NewClient().Source())
}
