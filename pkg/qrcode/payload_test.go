package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_JSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		id      string
		typ     string
		version int
	}{
		{"full payload", `{"t":"inv","id":"HD00125","v":1}`, "HD00125", "inv", 1},
		{"defaults", `{"id":"HD00125"}`, "HD00125", "invoice", 1},
		{"explicit version", `{"id":"A-1","v":3}`, "A-1", "invoice", 3},
		{"numeric id", `{"id":125}`, "125", "invoice", 1},
		{"zero version defaults", `{"id":"X","v":0}`, "X", "invoice", 1},
		{"string version defaults", `{"id":"HD00125","v":"1"}`, "HD00125", "invoice", 1},
		{"numeric type defaults", `{"t":1,"id":"HD00125"}`, "HD00125", "invoice", 1},
		{"empty type defaults", `{"t":"","id":"HD00125"}`, "HD00125", "invoice", 1},
		{"null fields default", `{"t":null,"id":"HD00125","v":null}`, "HD00125", "invoice", 1},
		{"huge version defaults", `{"id":"HD00125","v":1e300}`, "HD00125", "invoice", 1},
		{"negative huge version defaults", `{"id":"HD00125","v":-1e300}`, "HD00125", "invoice", 1},
		{"object version defaults", `{"id":"HD00125","v":{"major":2}}`, "HD00125", "invoice", 1},
		{"fractional version truncates", `{"id":"HD00125","v":2.7}`, "HD00125", "invoice", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := ParsePayload(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.id, payload.InvoiceID)
			assert.Equal(t, tt.typ, payload.Type)
			assert.Equal(t, tt.version, payload.Version)
		})
	}
}

func TestParsePayload_JSONFailures(t *testing.T) {
	for _, raw := range []string{`{"t":"inv"`, `{"t":"inv","v":1}`, `{"id":""}`, `{"id":null}`, `{"id":["a"]}`, `{"id":"x"} trailing`} {
		payload, ok := ParsePayload(raw)
		assert.False(t, ok, raw)
		assert.Nil(t, payload, raw)
	}
}

func TestParsePayload_URL(t *testing.T) {
	payload, ok := ParsePayload("https://billora.app/invoice/HD00125")
	require.True(t, ok)
	assert.Equal(t, "HD00125", payload.InvoiceID)
	assert.Equal(t, "invoice", payload.Type)
	assert.Equal(t, 1, payload.Version)

	payload, ok = ParsePayload("https://billora.app/invoice/HD00125?src=qr")
	require.True(t, ok)
	assert.Equal(t, "HD00125", payload.InvoiceID)
}

func TestParsePayload_URLKeepsEncodedSegment(t *testing.T) {
	tests := []struct {
		raw string
		id  string
	}{
		{"https://billora.app/invoice/HD%2F1", "HD%2F1"},
		{"https://billora.app/invoice/HD%2000125", "HD%2000125"},
		{"https://billora.app/invoice/HD00125", "HD00125"},
	}

	for _, tt := range tests {
		payload, ok := ParsePayload(tt.raw)
		require.True(t, ok, tt.raw)
		assert.Equal(t, tt.id, payload.InvoiceID, tt.raw)
	}
}

func TestParsePayload_URLFallsThroughToLiteral(t *testing.T) {
	for _, raw := range []string{"https://billora.app/invoice/", "http", "httpHD1", "http://%zz"} {
		payload, ok := ParsePayload(raw)
		require.True(t, ok, raw)
		assert.Equal(t, raw, payload.InvoiceID)
		assert.Equal(t, "invoice", payload.Type)
		assert.Equal(t, 1, payload.Version)
	}
}

func TestParsePayload_Literal(t *testing.T) {
	for _, raw := range []string{"HD00125", " spaced id ", "inv/42", "[not json]"} {
		payload, ok := ParsePayload(raw)
		require.True(t, ok, raw)
		assert.Equal(t, raw, payload.InvoiceID)
		assert.Equal(t, "invoice", payload.Type)
		assert.Equal(t, 1, payload.Version)
	}
}

func TestParsePayload_Empty(t *testing.T) {
	payload, ok := ParsePayload("")
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestEncode_RoundTrip(t *testing.T) {
	data, raw, err := Encode("HD00125")
	require.NoError(t, err)
	assert.Equal(t, "inv", data.T)
	assert.Equal(t, "HD00125", data.ID)
	assert.Equal(t, 1, data.V)
	assert.JSONEq(t, `{"t":"inv","id":"HD00125","v":1}`, raw)

	payload, ok := ParsePayload(raw)
	require.True(t, ok)
	assert.Equal(t, "HD00125", payload.InvoiceID)
	assert.Equal(t, "inv", payload.Type)
	assert.Equal(t, 1, payload.Version)
}
