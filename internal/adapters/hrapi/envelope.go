package hrapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Amund211/rollcall/internal/domain"
)

// Envelope is the common response wrapper. Services report either a numeric
// status or a success flag.
type Envelope struct {
	Status  int
	Success bool
	Message string

	// Data is nil when the field is absent and "null" when it is null
	Data json.RawMessage
}

func (e Envelope) HasData() bool {
	return e.Data != nil && !bytes.Equal(bytes.TrimSpace(e.Data), []byte("null"))
}

func DecodeEnvelope(body []byte) (Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", domain.ErrInvalidResponse, err)
	}

	envelope := Envelope{}

	if raw, ok := fields["status"]; ok {
		_ = json.Unmarshal(raw, &envelope.Status)
	}
	if raw, ok := fields["success"]; ok {
		_ = json.Unmarshal(raw, &envelope.Success)
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &envelope.Message)
	}

	data, ok := fields["data"]
	if !ok {
		return Envelope{}, fmt.Errorf("%w: missing data field", domain.ErrInvalidResponse)
	}
	envelope.Data = data

	return envelope, nil
}

// envelopeMessage extracts the message from an error response, if there is one
func envelopeMessage(body []byte) string {
	var withMessage struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &withMessage); err != nil {
		return ""
	}
	return withMessage.Message
}

// decodeData decodes the non-null data field into target
func decodeData(body []byte, target any) error {
	envelope, err := DecodeEnvelope(body)
	if err != nil {
		return err
	}
	if !envelope.HasData() {
		return fmt.Errorf("%w: data is null", domain.ErrInvalidResponse)
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidResponse, err)
	}
	return nil
}

// decodeOptionalData is decodeData, but a null data field leaves target untouched
func decodeOptionalData(body []byte, target any) error {
	envelope, err := DecodeEnvelope(body)
	if err != nil {
		return err
	}
	if !envelope.HasData() {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidResponse, err)
	}
	return nil
}
