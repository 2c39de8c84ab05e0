package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SkillLevel is an optional proficiency marker on a skill
type SkillLevel string

// Skill levels
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// ExperienceItem represents one position held at a company
type ExperienceItem struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// EducationItem represents a degree or program
type EducationItem struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Honors      []string `json:"honors,omitempty"`
}

// SkillItem represents a single skill
type SkillItem struct {
	Name     string     `json:"name"`
	Category string     `json:"category,omitempty"`
	Level    SkillLevel `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// ProjectItem represents a project entry
type ProjectItem struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// ItemKind tags which variant a SectionItem holds
type ItemKind string

// Item kinds
const (
	ItemExperience ItemKind = "experience"
	ItemEducation  ItemKind = "education"
	ItemSkill      ItemKind = "skill"
	ItemProject    ItemKind = "project"
	ItemText       ItemKind = "text"
	ItemRaw        ItemKind = "raw"
)

// SectionItem is one entry of a section. It holds exactly one variant,
// selected by Kind. Raw items carry opaque JSON for section types the
// editor has no typed shape for (certifications, languages, custom).
type SectionItem struct {
	kind       ItemKind
	experience *ExperienceItem
	education  *EducationItem
	skill      *SkillItem
	project    *ProjectItem
	text       string
	raw        json.RawMessage
}

// FromExperience wraps an experience entry
func FromExperience(e ExperienceItem) SectionItem {
	return SectionItem{kind: ItemExperience, experience: &e}
}

// FromEducation wraps an education entry
func FromEducation(e EducationItem) SectionItem {
	return SectionItem{kind: ItemEducation, education: &e}
}

// FromSkill wraps a skill entry
func FromSkill(s SkillItem) SectionItem {
	return SectionItem{kind: ItemSkill, skill: &s}
}

// FromProject wraps a project entry
func FromProject(p ProjectItem) SectionItem {
	return SectionItem{kind: ItemProject, project: &p}
}

// FromText wraps a plain string item (summary content)
func FromText(s string) SectionItem {
	return SectionItem{kind: ItemText, text: s}
}

// FromRaw wraps opaque JSON. The bytes are compacted; invalid JSON is
// stored as a JSON string so the item always re-encodes.
func FromRaw(raw json.RawMessage) SectionItem {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		quoted, _ := json.Marshal(string(raw))
		return SectionItem{kind: ItemRaw, raw: quoted}
	}
	return SectionItem{kind: ItemRaw, raw: buf.Bytes()}
}

// Kind returns the variant tag
func (i SectionItem) Kind() ItemKind {
	return i.kind
}

// Experience returns the experience variant
func (i SectionItem) Experience() (ExperienceItem, bool) {
	if i.kind != ItemExperience || i.experience == nil {
		return ExperienceItem{}, false
	}
	return *i.experience, true
}

// Education returns the education variant
func (i SectionItem) Education() (EducationItem, bool) {
	if i.kind != ItemEducation || i.education == nil {
		return EducationItem{}, false
	}
	return *i.education, true
}

// Skill returns the skill variant
func (i SectionItem) Skill() (SkillItem, bool) {
	if i.kind != ItemSkill || i.skill == nil {
		return SkillItem{}, false
	}
	return *i.skill, true
}

// Project returns the project variant
func (i SectionItem) Project() (ProjectItem, bool) {
	if i.kind != ItemProject || i.project == nil {
		return ProjectItem{}, false
	}
	return *i.project, true
}

// Text returns the text variant
func (i SectionItem) Text() (string, bool) {
	if i.kind != ItemText {
		return "", false
	}
	return i.text, true
}

// Raw returns the item as JSON. For typed variants this is the encoded value.
func (i SectionItem) Raw() json.RawMessage {
	if i.kind == ItemRaw {
		return i.raw
	}
	data, err := i.MarshalJSON()
	if err != nil {
		return nil
	}
	return data
}

// MarshalJSON encodes the held variant
func (i SectionItem) MarshalJSON() ([]byte, error) {
	switch i.kind {
	case ItemExperience:
		return json.Marshal(i.experience)
	case ItemEducation:
		return json.Marshal(i.education)
	case ItemSkill:
		return json.Marshal(i.skill)
	case ItemProject:
		return json.Marshal(i.project)
	case ItemText:
		return json.Marshal(i.text)
	case ItemRaw:
		if len(i.raw) == 0 {
			return []byte("null"), nil
		}
		return i.raw, nil
	default:
		return []byte("null"), nil
	}
}

// DecodeItem decodes a raw item according to the type of the section it belongs to
func DecodeItem(sectionType SectionType, raw json.RawMessage) (SectionItem, error) {
	switch sectionType {
	case SectionExperience:
		var item ExperienceItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return SectionItem{}, fmt.Errorf("failed to decode experience item: %w", err)
		}
		return FromExperience(item), nil
	case SectionEducation:
		var item EducationItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return SectionItem{}, fmt.Errorf("failed to decode education item: %w", err)
		}
		return FromEducation(item), nil
	case SectionSkills:
		var item SkillItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return SectionItem{}, fmt.Errorf("failed to decode skill item: %w", err)
		}
		return FromSkill(item), nil
	case SectionProjects:
		var item ProjectItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return SectionItem{}, fmt.Errorf("failed to decode project item: %w", err)
		}
		return FromProject(item), nil
	case SectionSummary:
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return FromText(text), nil
		}
		return FromRaw(raw), nil
	default:
		return FromRaw(raw), nil
	}
}

func (i SectionItem) validate(validate *validator.Validate) error {
	switch i.kind {
	case ItemSkill:
		return validate.Struct(i.skill)
	case ItemExperience, ItemEducation, ItemProject, ItemText, ItemRaw:
		return nil
	default:
		return fmt.Errorf("item has no variant set")
	}
}
