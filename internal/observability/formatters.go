// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxBlocksToShow bounds block listings, which are usually longer
	maxBlocksToShow = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs a human-readable outline of a composed document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.PersonalInfo.Name))
	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Title))
	}
	if doc.Template != "" {
		sb.WriteString(fmt.Sprintf("Template: %s\n", doc.Template))
	}
	sb.WriteString(fmt.Sprintf("Version:  %d\n", doc.Metadata.Version))

	sections := doc.SortedSections()
	if len(sections) > 0 {
		sb.WriteString("\nSections:\n")
	}
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("  • %s (%s, %d items)\n", s.Title, s.Type, len(s.Items)))
		count := min(len(s.Items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("      - %s\n", itemLabel(s.Items[i])))
		}
		if len(s.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("      ... and %d more\n", len(s.Items)-maxItemsToShow))
		}
	}

	p.printBox("DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBlocks outputs the flat block list in order.
func (p *Printer) PrintBlocks(list []blocks.Block) {
	if len(list) == 0 {
		return
	}
	p.printBox("BLOCKS", blockListing(list, "", ""))
}

// PrintState outputs the block list with selection and editing markers.
func (p *Printer) PrintState(state editor.State) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Blocks:   %d\n", len(state.Blocks)))
	sb.WriteString(fmt.Sprintf("Selected: %s\n", orNone(state.SelectedID)))
	sb.WriteString(fmt.Sprintf("Editing:  %s\n", orNone(state.EditingID)))
	if len(state.Blocks) > 0 {
		sb.WriteString("\n")
		sb.WriteString(blockListing(state.Blocks, state.SelectedID, state.EditingID))
	}
	p.printBox("EDITOR STATE", strings.TrimSuffix(sb.String(), "\n"))
}

func blockListing(list []blocks.Block, selectedID, editingID string) string {
	var sb strings.Builder
	count := min(len(list), maxBlocksToShow)
	for i := 0; i < count; i++ {
		b := list[i]
		marker := " "
		switch b.ID {
		case editingID:
			marker = "✎"
		case selectedID:
			marker = "▸"
		}
		indent := "  "
		if b.Type == blocks.TypeHeader || b.Type == blocks.TypeSectionMarker {
			indent = ""
		}
		sb.WriteString(fmt.Sprintf("%s %8.2f %s%s\n", marker, b.Order, indent, blockLabel(b)))
	}
	if len(list) > maxBlocksToShow {
		sb.WriteString(fmt.Sprintf("... and %d more blocks\n", len(list)-maxBlocksToShow))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func blockLabel(b blocks.Block) string {
	switch pl := b.Payload.(type) {
	case blocks.HeaderPayload:
		return "[header] " + pl.Name
	case blocks.SectionMarkerPayload:
		return fmt.Sprintf("[%s] %s", pl.SectionType, pl.Title)
	case blocks.ExperiencePayload:
		return joinNonEmpty(pl.Position, pl.Company)
	case blocks.EducationPayload:
		return joinNonEmpty(pl.Degree, pl.Institution)
	case blocks.SkillPayload:
		return joinNonEmpty(pl.Name, string(pl.Level))
	case blocks.ProjectPayload:
		return pl.Name
	case blocks.SummaryPayload:
		return strings.ReplaceAll(pl.Content, "\n", " ")
	case blocks.DividerPayload:
		return "────"
	case blocks.CustomPayload:
		return "custom " + string(pl.Data)
	default:
		return string(b.Type)
	}
}

func itemLabel(item types.SectionItem) string {
	switch item.Kind() {
	case types.ItemExperience:
		e, _ := item.Experience()
		return joinNonEmpty(e.Position, e.Company)
	case types.ItemEducation:
		e, _ := item.Education()
		return joinNonEmpty(e.Degree, e.Institution)
	case types.ItemSkill:
		s, _ := item.Skill()
		return joinNonEmpty(s.Name, string(s.Level))
	case types.ItemProject:
		pr, _ := item.Project()
		return pr.Name
	case types.ItemText:
		text, _ := item.Text()
		return strings.ReplaceAll(text, "\n", " ")
	default:
		return string(item.Raw())
	}
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " · " + b
	}
}

func orNone(id string) string {
	if id == "" {
		return "(none)"
	}
	return id
}
