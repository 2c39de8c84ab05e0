// Package rendering provides functionality to render LaTeX resumes from composed documents.
package rendering

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/jonathan/resume-editor/internal/types"
)

//go:embed templates/default.tex
var defaultTemplate string

// DefaultTemplate returns the built-in LaTeX template
func DefaultTemplate() string {
	return defaultTemplate
}

// TemplateData represents the data structure passed to the LaTeX template.
// Every string is already escaped for LaTeX.
type TemplateData struct {
	Name     string
	Contact  []string
	Sections []SectionData
}

// SectionData is one rendered section. Only the slice matching the section's
// item kinds is populated.
type SectionData struct {
	Title      string
	Type       types.SectionType
	Paragraphs []string
	Experience []ExperienceEntry
	Education  []EducationEntry
	Skills     []SkillGroup
	Projects   []ProjectEntry
	Entries    []string
}

// ExperienceEntry is a rendered experience item
type ExperienceEntry struct {
	Company     string
	Position    string
	Location    string
	Dates       string
	Description string
	Bullets     []string
}

// EducationEntry is a rendered education item
type EducationEntry struct {
	Institution string
	Degree      string
	Location    string
	Dates       string
	GPA         string
	Honors      []string
}

// SkillGroup collects skill names sharing a category, in first-seen order
type SkillGroup struct {
	Category string
	Names    []string
}

// ProjectEntry is a rendered project item
type ProjectEntry struct {
	Name         string
	Description  string
	Technologies []string
	Dates        string
	Link         string
}

// RenderLaTeX renders doc with the template at templatePath, or with the
// built-in template when templatePath is empty.
func RenderLaTeX(doc *types.Document, templatePath string) (string, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if templatePath == "" {
		tmpl, err = newTemplate(defaultTemplate)
	} else {
		tmpl, err = parseTemplate(templatePath)
	}
	if err != nil {
		return "", err
	}
	return execute(tmpl, doc)
}

// RenderLaTeXString renders doc with the given template source
func RenderLaTeXString(doc *types.Document, templateContent string) (string, error) {
	tmpl, err := newTemplate(templateContent)
	if err != nil {
		return "", err
	}
	return execute(tmpl, doc)
}

func execute(tmpl *template.Template, doc *types.Document) (string, error) {
	data, err := buildTemplateData(doc)
	if err != nil {
		return "", &RenderError{
			Message: "failed to build template data",
			Cause:   err,
		}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return newTemplate(string(content))
}

func newTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"join":   strings.Join,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// buildTemplateData constructs the template data from a composed document.
// Sections are emitted in their order; empty sections are skipped.
func buildTemplateData(doc *types.Document) (*TemplateData, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	info := doc.PersonalInfo
	var contact []string
	for _, v := range []string{info.Email, info.Phone, info.Location, info.LinkedIn, info.GitHub, info.Website, info.Portfolio} {
		if v != "" {
			contact = append(contact, EscapeLaTeX(v))
		}
	}

	data := &TemplateData{
		Name:     EscapeLaTeX(info.Name),
		Contact:  contact,
		Sections: []SectionData{},
	}

	for _, section := range doc.SortedSections() {
		if len(section.Items) == 0 {
			continue
		}
		sd, err := buildSection(section)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", section.ID, err)
		}
		data.Sections = append(data.Sections, sd)
	}

	return data, nil
}

func buildSection(section types.Section) (SectionData, error) {
	sd := SectionData{
		Title: EscapeLaTeX(section.Title),
		Type:  section.Type,
	}
	skillIndex := make(map[string]int)

	for _, item := range section.Items {
		switch item.Kind() {
		case types.ItemExperience:
			e, _ := item.Experience()
			sd.Experience = append(sd.Experience, ExperienceEntry{
				Company:     EscapeLaTeX(e.Company),
				Position:    EscapeLaTeX(e.Position),
				Location:    EscapeLaTeX(e.Location),
				Dates:       formatDateRange(e.StartDate, e.EndDate, e.Current),
				Description: EscapeLaTeX(e.Description),
				Bullets:     escapeAll(e.Achievements),
			})
		case types.ItemEducation:
			e, _ := item.Education()
			degree := e.Degree
			if e.Field != "" {
				degree += " in " + e.Field
			}
			sd.Education = append(sd.Education, EducationEntry{
				Institution: EscapeLaTeX(e.Institution),
				Degree:      EscapeLaTeX(degree),
				Location:    EscapeLaTeX(e.Location),
				Dates:       formatDateRange(e.StartDate, e.EndDate, false),
				GPA:         EscapeLaTeX(e.GPA),
				Honors:      escapeAll(e.Honors),
			})
		case types.ItemSkill:
			s, _ := item.Skill()
			idx, ok := skillIndex[s.Category]
			if !ok {
				idx = len(sd.Skills)
				skillIndex[s.Category] = idx
				sd.Skills = append(sd.Skills, SkillGroup{Category: EscapeLaTeX(s.Category)})
			}
			sd.Skills[idx].Names = append(sd.Skills[idx].Names, EscapeLaTeX(s.Name))
		case types.ItemProject:
			p, _ := item.Project()
			link := p.URL
			if link == "" {
				link = p.GitHub
			}
			sd.Projects = append(sd.Projects, ProjectEntry{
				Name:         EscapeLaTeX(p.Name),
				Description:  EscapeLaTeX(p.Description),
				Technologies: escapeAll(p.Technologies),
				Dates:        formatDateRange(p.StartDate, p.EndDate, false),
				Link:         escapeURL(link),
			})
		case types.ItemText:
			text, _ := item.Text()
			sd.Paragraphs = append(sd.Paragraphs, EscapeParagraph(text))
		default:
			entry, err := rawEntry(item.Raw())
			if err != nil {
				return SectionData{}, err
			}
			if entry != "" {
				sd.Entries = append(sd.Entries, EscapeLaTeX(entry))
			}
		}
	}

	return sd, nil
}

// formatDateRange renders "start -- end", using "Present" for ongoing items
func formatDateRange(start, end string, current bool) string {
	if current || end == "present" {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return EscapeLaTeX(end)
	case end == "":
		return EscapeLaTeX(start)
	default:
		return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
	}
}

// rawEntry flattens an opaque item into one line of text. Strings are used
// as-is; objects contribute their scalar values ordered by key.
func rawEntry(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("failed to decode item: %w", err)
	}

	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var parts []string
		for _, k := range keys {
			switch field := val[k].(type) {
			case string:
				if field != "" {
					parts = append(parts, field)
				}
			case float64, bool:
				parts = append(parts, fmt.Sprint(field))
			}
		}
		return strings.Join(parts, " -- "), nil
	default:
		return fmt.Sprint(val), nil
	}
}
