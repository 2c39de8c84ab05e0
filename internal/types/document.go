// Package types provides type definitions for the persisted resume document shared by the editor,
// the transcoder, the stores and the exporters.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

// SectionType identifies what kind of items a section holds
type SectionType string

// Section types understood by the editor
const (
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionSummary        SectionType = "summary"
	SectionCertifications SectionType = "certifications"
	SectionLanguages      SectionType = "languages"
	SectionCustom         SectionType = "custom"
)

// SectionTypes lists every section type in canonical order
var SectionTypes = []SectionType{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionSummary,
	SectionCertifications,
	SectionLanguages,
	SectionCustom,
}

// Valid reports whether t is one of the known section types
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Document is the hierarchical, persisted form of a resume
type Document struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Sections     []Section    `json:"sections" validate:"dive"`
	Template     string       `json:"template"`
	Metadata     Metadata     `json:"metadata"`
}

// PersonalInfo holds the candidate's contact details
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Section is an ordered group of items of one type
type Section struct {
	ID    string        `json:"id"`
	Type  SectionType   `json:"type" validate:"required,oneof=experience education skills projects summary certifications languages custom"`
	Title string        `json:"title"`
	Items []SectionItem `json:"items"`
	Order int           `json:"order"`
}

// Metadata tracks document lifecycle information
type Metadata struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int       `json:"version" validate:"gte=0"`
}

// UnmarshalJSON decodes a section, using its type to decide the shape of each item
func (s *Section) UnmarshalJSON(data []byte) error {
	type sectionAlias struct {
		ID    string            `json:"id"`
		Type  SectionType       `json:"type"`
		Title string            `json:"title"`
		Items []json.RawMessage `json:"items"`
		Order int               `json:"order"`
	}

	var alias sectionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	items := make([]SectionItem, 0, len(alias.Items))
	for i, raw := range alias.Items {
		item, err := DecodeItem(alias.Type, raw)
		if err != nil {
			return fmt.Errorf("section %q item %d: %w", alias.ID, i, err)
		}
		items = append(items, item)
	}

	*s = Section{
		ID:    alias.ID,
		Type:  alias.Type,
		Title: alias.Title,
		Items: items,
		Order: alias.Order,
	}
	return nil
}

// MarshalJSON always emits items as an array, never null
func (s Section) MarshalJSON() ([]byte, error) {
	type sectionAlias Section
	alias := sectionAlias(s)
	if alias.Items == nil {
		alias.Items = []SectionItem{}
	}
	return json.Marshal(alias)
}

// SortedSections returns the sections stably sorted by their Order field.
// The receiver is not modified.
func (d *Document) SortedSections() []Section {
	sections := make([]Section, len(d.Sections))
	copy(sections, d.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}

// Validate checks the document's shape: known section types, well-formed
// email and item enums. It does not judge content.
func (d *Document) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return err
	}
	for _, section := range d.Sections {
		for i, item := range section.Items {
			if err := item.validate(validate); err != nil {
				return fmt.Errorf("section %q item %d: %w", section.ID, i, err)
			}
		}
	}
	return nil
}

// Validate validates the PersonalInfo using the validator.
func (p *PersonalInfo) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
