package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Clone returns a deep copy of b carrying newID. Order is kept; callers
// assign a new order for the copy.
func Clone(b Block, newID string) Block {
	out := Block{
		ID:      newID,
		Type:    b.Type,
		Order:   b.Order,
		Payload: clonePayload(b.Payload),
	}
	if b.Style != nil {
		style := *b.Style
		out.Style = &style
	}
	return out
}

func clonePayload(p Payload) Payload {
	switch v := p.(type) {
	case HeaderPayload:
		return v
	case SectionMarkerPayload:
		return v
	case ExperiencePayload:
		v.Achievements = cloneStrings(v.Achievements)
		return v
	case EducationPayload:
		v.Honors = cloneStrings(v.Honors)
		return v
	case SkillPayload:
		return v
	case ProjectPayload:
		v.Technologies = cloneStrings(v.Technologies)
		return v
	case SummaryPayload:
		return v
	case DividerPayload:
		return v
	case CustomPayload:
		v.Data = append(json.RawMessage(nil), v.Data...)
		return v
	default:
		return p
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Validate checks a block's shape: a known type and a payload matching it
// whose fields hold allowed values (known section type, skill level, a
// well-formed email). Empty text fields are allowed, so a block can be
// cleared while it is being edited.
func Validate(b Block) error {
	if !b.Type.Valid() {
		return fmt.Errorf("unknown block type: %q", b.Type)
	}
	if b.Payload == nil {
		return fmt.Errorf("block %s has no payload", b.ID)
	}
	if b.Payload.BlockType() != b.Type {
		return fmt.Errorf("block %s: payload is %s, want %s", b.ID, b.Payload.BlockType(), b.Type)
	}
	if err := validateFields(b.Payload); err != nil {
		return fmt.Errorf("block %s: %w", b.ID, err)
	}
	return nil
}

var payloadValidator = validator.New()

func validateFields(p Payload) error {
	switch p.(type) {
	case DividerPayload, CustomPayload:
		return nil
	default:
		return payloadValidator.Struct(p)
	}
}
