package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
)

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	d := domain.DateOf(time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2026-03-10", d.String())
	assert.True(t, d.Equal(domain.NewDate(2026, time.March, 10)))
}

func TestDate_DaysUntil(t *testing.T) {
	start := domain.NewDate(2026, time.February, 27)
	assert.Equal(t, int64(3), start.DaysUntil(start.AddDays(3)))
	assert.Equal(t, int64(0), start.DaysUntil(start))
	assert.Equal(t, "2026-03-02", start.AddDays(3).String())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Checkin  domain.Date `json:"checkin"`
		Checkout domain.Date `json:"checkout"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"checkin":"2026-03-10","checkout":null}`), &payload))
	assert.Equal(t, "2026-03-10", payload.Checkin.String())
	assert.True(t, payload.Checkout.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkin":"2026-03-10","checkout":null}`, string(out))

	var bad domain.Date
	assert.Error(t, json.Unmarshal([]byte(`"10/03/2026"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`20260310`), &bad))
}

func TestDate_Scan(t *testing.T) {
	var d domain.Date
	require.NoError(t, d.Scan(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2026-03-10", d.String())

	require.NoError(t, d.Scan([]byte("2026-04-01")))
	assert.Equal(t, "2026-04-01", d.String())

	require.NoError(t, d.Scan("2026-04-02T00:00:00Z"))
	assert.Equal(t, "2026-04-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
