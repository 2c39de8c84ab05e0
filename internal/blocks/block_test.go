package blocks

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault_PayloadPerType(t *testing.T) {
	for _, bt := range Types {
		t.Run(string(bt), func(t *testing.T) {
			b := NewDefault(bt, 5)

			assert.NotEmpty(t, b.ID)
			assert.Equal(t, bt, b.Type)
			assert.Equal(t, 5.0, b.Order)
			require.NotNil(t, b.Payload)
			assert.Equal(t, bt, b.Payload.BlockType())
		})
	}
}

func TestNewDefault_Defaults(t *testing.T) {
	header := NewDefault(TypeHeader, 0).Payload.(HeaderPayload)
	assert.Equal(t, "", header.Name)

	exp := NewDefault(TypeExperience, 1).Payload.(ExperiencePayload)
	assert.Equal(t, "", exp.Company)
	assert.Equal(t, "", exp.Position)
	assert.False(t, exp.Current)

	marker := NewDefault(TypeSectionMarker, 1).Payload.(SectionMarkerPayload)
	assert.Equal(t, DefaultSectionTitle, marker.Title)
	assert.Equal(t, types.SectionCustom, marker.SectionType)
}

func TestNewDefault_UnknownTypeIsCustom(t *testing.T) {
	b := NewDefaultWithID("b1", Type("sidebar"), 1)
	assert.Equal(t, TypeCustom, b.Type)
	assert.IsType(t, CustomPayload{}, b.Payload)
}

func TestNewDefault_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewDefault(TypeSkill, float64(i)).ID
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSortBlocks_TiesBrokenByID(t *testing.T) {
	list := []Block{
		{ID: "c", Order: 1},
		{ID: "b", Order: 1},
		{ID: "a", Order: 2},
		{ID: "d", Order: 0.5},
	}
	SortBlocks(list)

	var ids []string
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)
}

func TestBlock_JSONRoundTrip(t *testing.T) {
	original := []Block{
		{ID: "h", Type: TypeHeader, Order: 0, Payload: HeaderPayload{Name: "Jane", Email: "jane@example.com"}},
		{ID: "m", Type: TypeSectionMarker, Order: 100, Payload: SectionMarkerPayload{Title: "Work", SectionType: types.SectionExperience}},
		{ID: "e", Type: TypeExperience, Order: 101, Payload: ExperiencePayload{Company: "Acme", Current: true, Achievements: []string{"a"}}},
		{ID: "s", Type: TypeSummary, Order: 200, Payload: SummaryPayload{Content: "hi"}, Style: &Style{Bold: true}},
		{ID: "d", Type: TypeDivider, Order: 300, Payload: DividerPayload{}},
		{ID: "c", Type: TypeCustom, Order: 400, Payload: CustomPayload{Data: json.RawMessage(`{"k":[1,2]}`)}},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded []Block
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestBlock_JSONShape(t *testing.T) {
	data, err := json.Marshal(Block{ID: "s", Type: TypeSkill, Order: 2.5, Payload: SkillPayload{Name: "Go"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s","type":"skill-item","order":2.5,"payload":{"name":"Go"}}`, string(data))
}

func TestBlock_UnmarshalUnknownType(t *testing.T) {
	var b Block
	err := json.Unmarshal([]byte(`{"id":"x","type":"sidebar","order":1,"payload":{}}`), &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown block type")
}

func TestBlock_UnmarshalMissingPayloadUsesDefault(t *testing.T) {
	var b Block
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","type":"experience-item","order":1}`), &b))
	assert.Equal(t, ExperiencePayload{}, b.Payload)
}

func TestItemTypeMapping(t *testing.T) {
	for _, st := range []types.SectionType{types.SectionExperience, types.SectionEducation, types.SectionSkills, types.SectionProjects, types.SectionSummary} {
		bt, ok := ItemTypeFor(st)
		require.True(t, ok, st)
		back, ok := SectionTypeFor(bt)
		require.True(t, ok)
		assert.Equal(t, st, back)
	}

	bt, ok := ItemTypeFor(types.SectionLanguages)
	assert.False(t, ok)
	assert.Equal(t, TypeCustom, bt)

	_, ok = SectionTypeFor(TypeDivider)
	assert.False(t, ok)
}

func TestClone_DeepCopiesSlices(t *testing.T) {
	src := Block{
		ID:      "p",
		Type:    TypeProject,
		Order:   3,
		Payload: ProjectPayload{Name: "x", Technologies: []string{"Go"}},
		Style:   &Style{Italic: true},
	}

	dup := Clone(src, "p2")
	assert.Equal(t, "p2", dup.ID)
	assert.Equal(t, src.Payload, dup.Payload)

	dup.Payload.(ProjectPayload).Technologies[0] = "Rust"
	dup.Style.Italic = false
	assert.Equal(t, "Go", src.Payload.(ProjectPayload).Technologies[0])
	assert.True(t, src.Style.Italic)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		block   Block
		wantErr bool
	}{
		{"header with name", Block{ID: "h", Type: TypeHeader, Payload: HeaderPayload{Name: "Jane"}}, false},
		{"header without name", Block{ID: "h", Type: TypeHeader, Payload: HeaderPayload{}}, false},
		{"header bad email", Block{ID: "h", Type: TypeHeader, Payload: HeaderPayload{Name: "Jane", Email: "nope"}}, true},
		{"marker without title", Block{ID: "m", Type: TypeSectionMarker, Payload: SectionMarkerPayload{SectionType: "skills"}}, false},
		{"marker without section type", Block{ID: "m", Type: TypeSectionMarker, Payload: SectionMarkerPayload{Title: "x"}}, true},
		{"marker bad section type", Block{ID: "m", Type: TypeSectionMarker, Payload: SectionMarkerPayload{Title: "x", SectionType: "hobbies"}}, true},
		{"skill bad level", Block{ID: "s", Type: TypeSkill, Payload: SkillPayload{Name: "Go", Level: "guru"}}, true},
		{"payload mismatch", Block{ID: "s", Type: TypeSkill, Payload: SummaryPayload{}}, true},
		{"nil payload", Block{ID: "s", Type: TypeSkill}, true},
		{"divider", Block{ID: "d", Type: TypeDivider, Payload: DividerPayload{}}, false},
		{"custom", Block{ID: "c", Type: TypeCustom, Payload: CustomPayload{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.block)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
