package qrcode

import (
	"billora-backend/domain"
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strings"
)

const (
	PayloadTypeInvoice = "invoice"
	encodedTypeInvoice = "inv"
	payloadVersion     = 1
)

// Encode builds the only payload shape this service ever generates.
func Encode(invoiceID string) (domain.EncodedQRPayload, string, error) {
	payload := domain.EncodedQRPayload{
		T:  encodedTypeInvoice,
		ID: invoiceID,
		V:  payloadVersion,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.EncodedQRPayload{}, "", err
	}

	return payload, string(raw), nil
}

// ParsePayload accepts a JSON payload, a lookup URL or a bare invoice id, tried in
// that order. The bool is false when no invoice id can be extracted.
func ParsePayload(raw string) (*domain.QRPayload, bool) {
	if strings.HasPrefix(raw, "{") {
		return parseJSONPayload(raw)
	}

	if strings.HasPrefix(raw, "http") {
		if payload, ok := parseURLPayload(raw); ok {
			return payload, true
		}
	}

	if raw != "" {
		return &domain.QRPayload{
			Type:      PayloadTypeInvoice,
			InvoiceID: raw,
			Version:   payloadVersion,
		}, true
	}

	return nil, false
}

func parseJSONPayload(raw string) (*domain.QRPayload, bool) {
	var body struct {
		T  json.RawMessage `json:"t"`
		ID json.RawMessage `json:"id"`
		V  json.RawMessage `json:"v"`
	}

	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, false
	}

	invoiceID := rawID(body.ID)
	if invoiceID == "" {
		return nil, false
	}

	return &domain.QRPayload{
		Type:      rawType(body.T),
		InvoiceID: invoiceID,
		Version:   rawVersion(body.V),
	}, true
}

// rawType keeps a non-empty string type and defaults everything else.
func rawType(t json.RawMessage) string {
	var s string
	if err := json.Unmarshal(t, &s); err != nil || s == "" {
		return PayloadTypeInvoice
	}
	return s
}

// rawVersion keeps a non-zero number in int32 range and defaults everything else.
func rawVersion(v json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(v, &f); err != nil || f < math.MinInt32 || f > math.MaxInt32 {
		return payloadVersion
	}
	if version := int(f); version != 0 {
		return version
	}
	return payloadVersion
}

// rawID accepts string and numeric ids; anything else counts as missing.
func rawID(id json.RawMessage) string {
	id = bytes.TrimSpace(id)
	if len(id) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(id, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(id, &n); err == nil {
		return n.String()
	}

	return ""
}

func parseURLPayload(raw string) (*domain.QRPayload, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}

	// The escaped path keeps %2F inside a single segment.
	segments := strings.Split(u.EscapedPath(), "/")
	invoiceID := segments[len(segments)-1]
	if invoiceID == "" {
		return nil, false
	}

	return &domain.QRPayload{
		Type:      PayloadTypeInvoice,
		InvoiceID: invoiceID,
		Version:   payloadVersion,
	}, true
}
