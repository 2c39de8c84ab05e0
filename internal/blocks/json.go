package blocks

import (
	"encoding/json"
	"fmt"
)

type blockJSON struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Order   float64         `json:"order"`
	Payload json.RawMessage `json:"payload"`
	Style   *Style          `json:"style,omitempty"`
}

// MarshalJSON encodes the block as {id, type, order, payload, style?}
func (b Block) MarshalJSON() ([]byte, error) {
	payload := b.Payload
	if payload == nil {
		payload = defaultPayload(b.Type)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", b.Type, err)
	}
	return json.Marshal(blockJSON{
		ID:      b.ID,
		Type:    b.Type,
		Order:   b.Order,
		Payload: raw,
		Style:   b.Style,
	})
}

// UnmarshalJSON decodes a block, selecting the payload shape by its type
func (b *Block) UnmarshalJSON(data []byte) error {
	var wire blockJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if !wire.Type.Valid() {
		return fmt.Errorf("unknown block type: %q", wire.Type)
	}
	payload, err := DecodePayload(wire.Type, wire.Payload)
	if err != nil {
		return fmt.Errorf("block %s: failed to decode payload: %w", wire.ID, err)
	}
	*b = Block{
		ID:      wire.ID,
		Type:    wire.Type,
		Order:   wire.Order,
		Payload: payload,
		Style:   wire.Style,
	}
	return nil
}
