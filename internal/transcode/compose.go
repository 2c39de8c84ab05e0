package transcode

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/types"
)

// DocumentContext carries the document fields that blocks do not hold.
// It is passed explicitly so several documents can be composed side by side.
type DocumentContext struct {
	ID       string
	Template string
	Metadata types.Metadata
}

// ContextOf captures the non-block fields of doc
func ContextOf(doc *types.Document) DocumentContext {
	if doc == nil {
		return DocumentContext{}
	}
	return DocumentContext{
		ID:       doc.ID,
		Template: doc.Template,
		Metadata: doc.Metadata,
	}
}

// Compose rebuilds a document from a block list.
//
// Exactly one header block is required. The remaining blocks are scanned in
// order: a section marker opens a section, item blocks are appended to the
// open section, a summary block replaces the section's items with its
// content. Blocks before the first marker are dropped, as are dividers.
func Compose(list []blocks.Block, dc DocumentContext) (*types.Document, error) {
	var header *blocks.HeaderPayload
	headers := 0
	rest := make([]blocks.Block, 0, len(list))

	for _, b := range list {
		if b.Type != blocks.TypeHeader {
			rest = append(rest, b)
			continue
		}
		headers++
		p, ok := b.Payload.(blocks.HeaderPayload)
		if !ok {
			return nil, &StructuralError{Message: fmt.Sprintf("header block %s has a %T payload", b.ID, b.Payload)}
		}
		header = &p
	}

	switch {
	case headers == 0:
		return nil, &StructuralError{Message: "no header block"}
	case headers > 1:
		return nil, &StructuralError{Message: fmt.Sprintf("found %d header blocks, want exactly one", headers)}
	}

	blocks.SortBlocks(rest)

	doc := &types.Document{
		ID:    dc.ID,
		Title: header.Title,
		PersonalInfo: types.PersonalInfo{
			Name:      header.Name,
			Email:     header.Email,
			Phone:     header.Phone,
			Location:  header.Location,
			LinkedIn:  header.LinkedIn,
			GitHub:    header.GitHub,
			Website:   header.Website,
			Portfolio: header.Portfolio,
		},
		Sections: []types.Section{},
		Template: dc.Template,
		Metadata: dc.Metadata,
	}

	var open *types.Section
	flush := func() {
		if open != nil {
			doc.Sections = append(doc.Sections, *open)
		}
	}

	for _, b := range rest {
		if marker, ok := b.Payload.(blocks.SectionMarkerPayload); ok {
			flush()
			open = &types.Section{
				ID:    b.ID,
				Type:  marker.SectionType,
				Title: marker.Title,
				Order: len(doc.Sections),
			}
			continue
		}

		if open == nil {
			continue
		}

		switch p := b.Payload.(type) {
		case blocks.ExperiencePayload:
			item := types.ExperienceItem(p)
			item.Achievements = copyStrings(item.Achievements)
			open.Items = append(open.Items, types.FromExperience(item))
		case blocks.EducationPayload:
			item := types.EducationItem(p)
			item.Honors = copyStrings(item.Honors)
			open.Items = append(open.Items, types.FromEducation(item))
		case blocks.SkillPayload:
			open.Items = append(open.Items, types.FromSkill(types.SkillItem(p)))
		case blocks.ProjectPayload:
			item := types.ProjectItem(p)
			item.Technologies = copyStrings(item.Technologies)
			open.Items = append(open.Items, types.FromProject(item))
		case blocks.SummaryPayload:
			open.Items = []types.SectionItem{types.FromText(p.Content)}
		case blocks.CustomPayload:
			open.Items = append(open.Items, composeCustom(p))
		case blocks.DividerPayload, blocks.HeaderPayload, nil:
		}
	}
	flush()

	return doc, nil
}

// composeCustom turns a custom block back into a section item.
//
// This is a lossy, best-effort passthrough: the block's JSON is carried
// verbatim, but anything the item meant beyond its JSON value is gone, and a
// custom block with no data becomes an empty object. A custom block placed
// under a typed section stays a raw item and is not coerced to that
// section's item shape.
func composeCustom(p blocks.CustomPayload) types.SectionItem {
	if len(p.Data) == 0 {
		return types.FromRaw(json.RawMessage("{}"))
	}
	return types.FromRaw(p.Data)
}

// Orphans returns the non-header blocks that Compose would drop because they
// sit before the first section marker, in order.
func Orphans(list []blocks.Block) []blocks.Block {
	var out []blocks.Block
	for _, b := range blocks.Sorted(list) {
		if b.Type == blocks.TypeSectionMarker {
			break
		}
		if b.Type == blocks.TypeHeader {
			continue
		}
		out = append(out, b)
	}
	return out
}
