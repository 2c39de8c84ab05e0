package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Patch is a set of payload fields to overwrite, keyed by JSON field name
type Patch map[string]any

// PatchError reports a patch that cannot be applied to a payload
type PatchError struct {
	Type    Type
	Message string
	Cause   error
}

func (e *PatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("patch %s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("patch %s: %s", e.Type, e.Message)
}

func (e *PatchError) Unwrap() error {
	return e.Cause
}

// ApplyPatch shallow-merges patch into payload and returns the result.
// Only keys present in patch change; the payload keeps its type.
// Keys that the payload does not define are rejected, except for custom
// payloads, which accept anything when their data is a JSON object.
// Values outside a field's allowed set (section type, skill level, email
// format) are rejected too; clearing a text field is not.
func ApplyPatch(payload Payload, patch Patch) (Payload, error) {
	if payload == nil {
		return nil, &PatchError{Message: "payload is nil"}
	}
	t := payload.BlockType()
	if len(patch) == 0 {
		return payload, nil
	}
	if t == TypeDivider {
		return nil, &PatchError{Type: t, Message: "divider blocks have no fields"}
	}

	current, err := json.Marshal(payload)
	if err != nil {
		return nil, &PatchError{Type: t, Message: "failed to encode payload", Cause: err}
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return nil, &PatchError{Type: t, Message: "payload is not an object", Cause: err}
	}
	for key, value := range patch {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, &PatchError{Type: t, Message: fmt.Sprintf("failed to encode field %q", key), Cause: err}
		}
		fields[key] = encoded
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, &PatchError{Type: t, Message: "failed to encode merged payload", Cause: err}
	}

	if t == TypeCustom {
		return CustomPayload{Data: merged}, nil
	}

	result, err := decodeStrict(t, merged)
	if err != nil {
		return nil, &PatchError{Type: t, Message: "patch does not fit payload", Cause: err}
	}
	if err := validateFields(result); err != nil {
		return nil, &PatchError{Type: t, Message: "patch sets a value the field does not allow", Cause: err}
	}
	return result, nil
}

// decodeStrict decodes data into t's payload, rejecting unknown fields
func decodeStrict(t Type, data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	switch t {
	case TypeHeader:
		var p HeaderPayload
		err := dec.Decode(&p)
		return p, err
	case TypeSectionMarker:
		var p SectionMarkerPayload
		err := dec.Decode(&p)
		return p, err
	case TypeExperience:
		var p ExperiencePayload
		err := dec.Decode(&p)
		return p, err
	case TypeEducation:
		var p EducationPayload
		err := dec.Decode(&p)
		return p, err
	case TypeSkill:
		var p SkillPayload
		err := dec.Decode(&p)
		return p, err
	case TypeProject:
		var p ProjectPayload
		err := dec.Decode(&p)
		return p, err
	case TypeSummary:
		var p SummaryPayload
		err := dec.Decode(&p)
		return p, err
	default:
		return nil, fmt.Errorf("unknown block type: %q", t)
	}
}
