package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionItem_Variants(t *testing.T) {
	item := FromProject(ProjectItem{Name: "editor", Description: "block editor", Technologies: []string{"Go"}})

	assert.Equal(t, ItemProject, item.Kind())
	_, ok := item.Experience()
	assert.False(t, ok)

	p, ok := item.Project()
	require.True(t, ok)
	assert.Equal(t, "editor", p.Name)
}

func TestSectionItem_ZeroValue(t *testing.T) {
	var item SectionItem

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
	assert.Error(t, item.validate(nil))
}

func TestFromRaw_CompactsJSON(t *testing.T) {
	item := FromRaw(json.RawMessage("{ \"a\" : 1 }"))
	assert.Equal(t, `{"a":1}`, string(item.Raw()))
}

func TestFromRaw_InvalidJSONBecomesString(t *testing.T) {
	item := FromRaw(json.RawMessage("not json"))
	assert.Equal(t, `"not json"`, string(item.Raw()))
}

func TestDecodeItem_SummaryFallsBackToRaw(t *testing.T) {
	item, err := DecodeItem(SectionSummary, json.RawMessage(`{"content":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, ItemRaw, item.Kind())
}

func TestDecodeItem_CustomSectionsStayRaw(t *testing.T) {
	for _, st := range []SectionType{SectionCertifications, SectionLanguages, SectionCustom} {
		item, err := DecodeItem(st, json.RawMessage(`{"name":"CKA"}`))
		require.NoError(t, err)
		assert.Equal(t, ItemRaw, item.Kind(), st)
	}
}
