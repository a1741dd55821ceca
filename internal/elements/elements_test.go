package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiterpro/internal/models"
)

func fullCandidate() *models.CandidateRecord {
	return &models.CandidateRecord{
		ID:                2,
		Name:              "Isabella Teets",
		Title:             "Medical Assistant",
		Location:          "Newport Beach, CA",
		CurrentPosition:   "Medical Assistant",
		CurrentWorkplace:  "Newport Family Medicine",
		Education:         "B.S. Psychological and Brain Sciences",
		ConnectionType:    models.ConnectionMutual,
		MutualConnections: "3 mutual connections",
	}
}

func TestBuild_AllElements(t *testing.T) {
	elems := Build(fullCandidate())
	require.Len(t, elems, 5)

	byID := map[string]models.ProfileElement{}
	for _, el := range elems {
		byID[el.ID] = el
	}

	assert.Equal(t, "B.S. Psychological and Brain Sciences", byID["edu-2"].Value)
	assert.Equal(t, "Medical Assistant at Newport Family Medicine", byID["pos-2"].Value)
	assert.Equal(t, "Mutual connection with 3 mutual connections", byID["con-2"].Value)
	assert.Equal(t, "Located in Newport Beach, CA", byID["loc-2"].Value)
	assert.Equal(t, "Specializes in Medical Assistant", byID["spec-2"].Value)

	for _, el := range elems {
		assert.False(t, el.Highlighted)
		assert.Equal(t, models.HighlightNeutral, el.HighlightType)
	}
}

func TestBuild_SparseCandidate(t *testing.T) {
	candidate := &models.CandidateRecord{ID: 1, Name: "Jane Doe", Location: "Tustin, CA"}
	elems := Build(candidate)
	require.Len(t, elems, 1)
	assert.Equal(t, "loc-1", elems[0].ID)
}

func TestBuild_ConnectionTextVariants(t *testing.T) {
	candidate := fullCandidate()
	candidate.MutualConnections = ""
	elems := Build(candidate)
	for _, el := range elems {
		if el.ID == "con-2" {
			assert.Equal(t, "Mutual connection with others", el.Value)
		}
	}

	candidate.ConnectionType = "2nd"
	elems = Build(candidate)
	for _, el := range elems {
		if el.ID == "con-2" {
			assert.Equal(t, "2nd connection", el.Value)
		}
	}
}

func TestToggleHighlight(t *testing.T) {
	elems := Build(fullCandidate())

	// Tag as good.
	assert.True(t, ToggleHighlight(elems, "pos-2", models.HighlightGood))
	assert.Equal(t, []string{"pos-2"}, Highlighted(elems, models.HighlightGood))

	// Same tag again clears it.
	assert.True(t, ToggleHighlight(elems, "pos-2", models.HighlightGood))
	assert.Empty(t, Highlighted(elems, models.HighlightGood))

	// Good then poor overwrites.
	assert.True(t, ToggleHighlight(elems, "loc-2", models.HighlightGood))
	assert.True(t, ToggleHighlight(elems, "loc-2", models.HighlightPoor))
	assert.Empty(t, Highlighted(elems, models.HighlightGood))
	assert.Equal(t, []string{"loc-2"}, Highlighted(elems, models.HighlightPoor))

	// Unknown element is a no-op.
	assert.False(t, ToggleHighlight(elems, "nope-1", models.HighlightGood))
}
