package transcode

import (
	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/types"
)

// SectionStride is the order-key distance between consecutive section markers
const SectionStride = 100

// IDFunc produces block ids
type IDFunc func() string

// Option configures Decompose
type Option func(*options)

type options struct {
	newID IDFunc
}

// WithIDFunc overrides the id generator used for new blocks
func WithIDFunc(fn IDFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// Decompose flattens doc into an ordered block list:
//
//   - a header block at order 0 from PersonalInfo and Title
//   - for section i (sorted by Order), a section marker at (i+1)*100
//   - for its item j, an item block at (i+1)*100 + j + 1
//
// A summary section contributes a single summary block holding its first
// item. Items of certifications, languages and custom sections, and items
// whose variant does not have a typed block, become custom blocks carrying
// the item's JSON. That path is best effort: see composeCustom.
func Decompose(doc *types.Document, opts ...Option) []blocks.Block {
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	if doc == nil {
		return nil
	}

	out := []blocks.Block{{
		ID:      o.newID(),
		Type:    blocks.TypeHeader,
		Order:   0,
		Payload: headerFromDocument(doc),
	}}

	used := map[string]bool{out[0].ID: true}
	for i, section := range doc.SortedSections() {
		base := float64((i + 1) * SectionStride)

		markerID := section.ID
		if markerID == "" || used[markerID] {
			markerID = o.newID()
		}
		used[markerID] = true

		out = append(out, blocks.Block{
			ID:    markerID,
			Type:  blocks.TypeSectionMarker,
			Order: base,
			Payload: blocks.SectionMarkerPayload{
				Title:       section.Title,
				SectionType: section.Type,
			},
		})

		if section.Type == types.SectionSummary {
			if len(section.Items) > 0 {
				id := o.newID()
				used[id] = true
				out = append(out, itemBlock(id, base+1, section.Type, section.Items[0]))
			}
			continue
		}

		for j, item := range section.Items {
			id := o.newID()
			used[id] = true
			out = append(out, itemBlock(id, base+float64(j+1), section.Type, item))
		}
	}

	return out
}

func headerFromDocument(doc *types.Document) blocks.HeaderPayload {
	info := doc.PersonalInfo
	return blocks.HeaderPayload{
		Name:      info.Name,
		Title:     doc.Title,
		Email:     info.Email,
		Phone:     info.Phone,
		Location:  info.Location,
		LinkedIn:  info.LinkedIn,
		GitHub:    info.GitHub,
		Website:   info.Website,
		Portfolio: info.Portfolio,
	}
}

// itemBlock converts one section item into a block. The item's own variant
// decides the block type; anything without a typed block becomes custom.
func itemBlock(id string, order float64, sectionType types.SectionType, item types.SectionItem) blocks.Block {
	b := blocks.Block{ID: id, Order: order}

	switch item.Kind() {
	case types.ItemExperience:
		v, _ := item.Experience()
		v.Achievements = copyStrings(v.Achievements)
		b.Type, b.Payload = blocks.TypeExperience, blocks.ExperiencePayload(v)
	case types.ItemEducation:
		v, _ := item.Education()
		v.Honors = copyStrings(v.Honors)
		b.Type, b.Payload = blocks.TypeEducation, blocks.EducationPayload(v)
	case types.ItemSkill:
		v, _ := item.Skill()
		b.Type, b.Payload = blocks.TypeSkill, blocks.SkillPayload(v)
	case types.ItemProject:
		v, _ := item.Project()
		v.Technologies = copyStrings(v.Technologies)
		b.Type, b.Payload = blocks.TypeProject, blocks.ProjectPayload(v)
	case types.ItemText:
		text, _ := item.Text()
		if sectionType == types.SectionSummary {
			b.Type, b.Payload = blocks.TypeSummary, blocks.SummaryPayload{Content: text}
			break
		}
		b.Type, b.Payload = blocks.TypeCustom, blocks.CustomPayload{Data: item.Raw()}
	case types.ItemRaw:
		b.Type, b.Payload = blocks.TypeCustom, blocks.CustomPayload{Data: item.Raw()}
	default:
		b.Type, b.Payload = blocks.TypeCustom, blocks.CustomPayload{}
	}

	return b
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
