package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-editor/internal/types"
)

// Payload is the type-specific content of a block. The set of
// implementations is closed; switch on Block.Type to access them.
type Payload interface {
	BlockType() Type
	sealed()
}

// HeaderPayload holds the name and contact line at the top of the resume
type HeaderPayload struct {
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// SectionMarkerPayload starts a section in the flat block list
type SectionMarkerPayload struct {
	Title       string            `json:"title"`
	SectionType types.SectionType `json:"sectionType" validate:"required,oneof=experience education skills projects summary certifications languages custom"`
}

// ExperiencePayload mirrors types.ExperienceItem field for field
type ExperiencePayload types.ExperienceItem

// EducationPayload mirrors types.EducationItem field for field
type EducationPayload types.EducationItem

// SkillPayload mirrors types.SkillItem field for field
type SkillPayload types.SkillItem

// ProjectPayload mirrors types.ProjectItem field for field
type ProjectPayload types.ProjectItem

// SummaryPayload holds free-form summary prose
type SummaryPayload struct {
	Content string `json:"content"`
}

// DividerPayload has no content
type DividerPayload struct{}

// CustomPayload carries opaque JSON that the editor passes through untouched
type CustomPayload struct {
	Data json.RawMessage
}

func (HeaderPayload) BlockType() Type        { return TypeHeader }
func (SectionMarkerPayload) BlockType() Type { return TypeSectionMarker }
func (ExperiencePayload) BlockType() Type    { return TypeExperience }
func (EducationPayload) BlockType() Type     { return TypeEducation }
func (SkillPayload) BlockType() Type         { return TypeSkill }
func (ProjectPayload) BlockType() Type       { return TypeProject }
func (SummaryPayload) BlockType() Type       { return TypeSummary }
func (DividerPayload) BlockType() Type       { return TypeDivider }
func (CustomPayload) BlockType() Type        { return TypeCustom }

func (HeaderPayload) sealed()        {}
func (SectionMarkerPayload) sealed() {}
func (ExperiencePayload) sealed()    {}
func (EducationPayload) sealed()     {}
func (SkillPayload) sealed()         {}
func (ProjectPayload) sealed()       {}
func (SummaryPayload) sealed()       {}
func (DividerPayload) sealed()       {}
func (CustomPayload) sealed()        {}

// MarshalJSON emits the opaque data, or an empty object when unset
func (p CustomPayload) MarshalJSON() ([]byte, error) {
	if len(p.Data) == 0 {
		return []byte("{}"), nil
	}
	return p.Data, nil
}

// UnmarshalJSON stores a copy of the raw data
func (p *CustomPayload) UnmarshalJSON(data []byte) error {
	p.Data = append(json.RawMessage(nil), data...)
	return nil
}

// DecodePayload decodes raw JSON into the payload shape selected by t
func DecodePayload(t Type, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return defaultPayload(t), nil
	}

	switch t {
	case TypeHeader:
		var p HeaderPayload
		return decodeInto(raw, &p)
	case TypeSectionMarker:
		var p SectionMarkerPayload
		return decodeInto(raw, &p)
	case TypeExperience:
		var p ExperiencePayload
		return decodeInto(raw, &p)
	case TypeEducation:
		var p EducationPayload
		return decodeInto(raw, &p)
	case TypeSkill:
		var p SkillPayload
		return decodeInto(raw, &p)
	case TypeProject:
		var p ProjectPayload
		return decodeInto(raw, &p)
	case TypeSummary:
		var p SummaryPayload
		return decodeInto(raw, &p)
	case TypeDivider:
		return DividerPayload{}, nil
	case TypeCustom:
		var p CustomPayload
		return decodeInto(raw, &p)
	default:
		return nil, fmt.Errorf("unknown block type: %q", t)
	}
}

// decodeInto unmarshals raw into p and returns the dereferenced payload
func decodeInto[T Payload](raw json.RawMessage, p *T) (Payload, error) {
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return *p, nil
}
