package blocks

import (
	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/types"
)

// DefaultSectionTitle is the title given to a freshly added section marker
const DefaultSectionTitle = "New Section"

// NewDefault creates a block of type t at the given order with a fresh id and
// a minimally valid default payload. Unknown types produce a custom block.
// No content validation is performed.
func NewDefault(t Type, order float64) Block {
	return NewDefaultWithID(uuid.NewString(), t, order)
}

// NewDefaultWithID is NewDefault with a caller-supplied id
func NewDefaultWithID(id string, t Type, order float64) Block {
	if !t.Valid() {
		t = TypeCustom
	}
	return Block{
		ID:      id,
		Type:    t,
		Order:   order,
		Payload: defaultPayload(t),
	}
}

func defaultPayload(t Type) Payload {
	switch t {
	case TypeHeader:
		return HeaderPayload{Name: ""}
	case TypeSectionMarker:
		return SectionMarkerPayload{Title: DefaultSectionTitle, SectionType: types.SectionCustom}
	case TypeExperience:
		return ExperiencePayload{Company: "", Position: "", StartDate: "", Current: false}
	case TypeEducation:
		return EducationPayload{Institution: "", Degree: ""}
	case TypeSkill:
		return SkillPayload{Name: ""}
	case TypeProject:
		return ProjectPayload{Name: "", Description: ""}
	case TypeSummary:
		return SummaryPayload{Content: ""}
	case TypeDivider:
		return DividerPayload{}
	default:
		return CustomPayload{}
	}
}
