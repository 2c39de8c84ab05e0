// Package blocks defines the editable unit of a resume: a typed, ordered block
// whose payload shape is selected by its type tag.
package blocks

import (
	"sort"

	"github.com/jonathan/resume-editor/internal/types"
)

// Type is the discriminator of a block
type Type string

// Block types
const (
	TypeHeader        Type = "header"
	TypeSectionMarker Type = "section-marker"
	TypeExperience    Type = "experience-item"
	TypeEducation     Type = "education-item"
	TypeSkill         Type = "skill-item"
	TypeProject       Type = "project-item"
	TypeSummary       Type = "summary"
	TypeDivider       Type = "divider"
	TypeCustom        Type = "custom"
)

// Types lists every block type
var Types = []Type{
	TypeHeader,
	TypeSectionMarker,
	TypeExperience,
	TypeEducation,
	TypeSkill,
	TypeProject,
	TypeSummary,
	TypeDivider,
	TypeCustom,
}

// Valid reports whether t is a known block type
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Block is an independently addressable, orderable unit of document content.
// Payload.BlockType() always equals Type.
type Block struct {
	ID      string
	Type    Type
	Order   float64
	Payload Payload
	Style   *Style
}

// Style carries optional presentation hints. The editor core never reads them.
type Style struct {
	Align        string  `json:"align,omitempty"`
	Bold         bool    `json:"bold,omitempty"`
	Italic       bool    `json:"italic,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	Color        string  `json:"color,omitempty"`
	MarginTop    float64 `json:"marginTop,omitempty"`
	MarginBottom float64 `json:"marginBottom,omitempty"`
}

// Less orders blocks by order key, breaking ties by id
func Less(a, b Block) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	return a.ID < b.ID
}

// SortBlocks sorts list in place by order key, ties broken by id
func SortBlocks(list []Block) {
	sort.SliceStable(list, func(i, j int) bool {
		return Less(list[i], list[j])
	})
}

// Sorted returns a sorted copy of list
func Sorted(list []Block) []Block {
	out := make([]Block, len(list))
	copy(out, list)
	SortBlocks(out)
	return out
}

// ItemTypeFor returns the block type used for items of a section type.
// Sections without a typed item shape report false and use TypeCustom.
func ItemTypeFor(sectionType types.SectionType) (Type, bool) {
	switch sectionType {
	case types.SectionExperience:
		return TypeExperience, true
	case types.SectionEducation:
		return TypeEducation, true
	case types.SectionSkills:
		return TypeSkill, true
	case types.SectionProjects:
		return TypeProject, true
	case types.SectionSummary:
		return TypeSummary, true
	default:
		return TypeCustom, false
	}
}

// SectionTypeFor returns the section type an item block naturally belongs to
func SectionTypeFor(t Type) (types.SectionType, bool) {
	switch t {
	case TypeExperience:
		return types.SectionExperience, true
	case TypeEducation:
		return types.SectionEducation, true
	case TypeSkill:
		return types.SectionSkills, true
	case TypeProject:
		return types.SectionProjects, true
	case TypeSummary:
		return types.SectionSummary, true
	case TypeCustom:
		return types.SectionCustom, true
	default:
		return "", false
	}
}
