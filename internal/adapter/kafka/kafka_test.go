package kafka

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/vortex"
)

func testReport() vortex.Report {
	return vortex.Report{
		ID:     "tg-0123456789abcdef",
		Params: vortex.Params{Time: 1, Viscosity: 0.1},
		Nx:     50,
		Ny:     40,
		Errors: []vortex.ErrorSummary{
			{Label: vortex.LabelU, MaxAbsError: 3.5e-3},
		},
		ComputedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	report := testReport()

	msg, err := serializeToMessage(report)
	require.NoError(t, err)

	assert.Equal(t, []byte("tg-0123456789abcdef"), msg.Key)
	assert.Contains(t, string(msg.Value), `"viscosity":0.1`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "grid", msg.Headers[0].Key)
	assert.Equal(t, []byte("50x40"), msg.Headers[0].Value)
	assert.Equal(t, "computed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[1].Value)

	var roundtrip vortex.Report
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))
	assert.Equal(t, report.ID, roundtrip.ID)
	assert.Equal(t, report.Errors, roundtrip.Errors)
}

func TestSerializeToMessage_NaNFails(t *testing.T) {
	report := testReport()
	report.Errors[0].MaxAbsError = math.NaN()

	_, err := serializeToMessage(report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize report")
}

func TestNewWriter(t *testing.T) {
	w := NewWriter(&config.Config{
		KafkaBrokers: []string{"broker1:9092", "broker2:9092"},
		KafkaTopic:   "reports",
	}, nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "reports", w.writer.Topic)
	assert.Equal(t, "broker1:9092,broker2:9092", w.writer.Addr.String())
}
