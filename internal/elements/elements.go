// Package elements derives the taggable profile elements shown under each
// candidate and manages their highlight state.
package elements

import (
	"fmt"

	"recruiterpro/internal/models"
)

// Build derives profile elements from a candidate's populated fields. Element
// IDs embed the candidate ID so they stay stable across rebuilds. Empty
// fields produce no element.
func Build(candidate *models.CandidateRecord) []models.ProfileElement {
	var elems []models.ProfileElement

	if candidate.Education != "" {
		elems = append(elems, models.ProfileElement{
			ID:            fmt.Sprintf("edu-%d", candidate.ID),
			Type:          models.ElementEducation,
			Value:         candidate.Education,
			HighlightType: models.HighlightNeutral,
		})
	}

	if candidate.CurrentPosition != "" {
		elems = append(elems, models.ProfileElement{
			ID:            fmt.Sprintf("pos-%d", candidate.ID),
			Type:          models.ElementExperience,
			Value:         fmt.Sprintf("%s at %s", candidate.CurrentPosition, candidate.CurrentWorkplace),
			HighlightType: models.HighlightNeutral,
		})
	}

	if candidate.ConnectionType != "" {
		elems = append(elems, models.ProfileElement{
			ID:            fmt.Sprintf("con-%d", candidate.ID),
			Type:          models.ElementConnection,
			Value:         connectionText(candidate),
			HighlightType: models.HighlightNeutral,
		})
	}

	if candidate.Location != "" {
		elems = append(elems, models.ProfileElement{
			ID:            fmt.Sprintf("loc-%d", candidate.ID),
			Type:          models.ElementLocation,
			Value:         fmt.Sprintf("Located in %s", candidate.Location),
			HighlightType: models.HighlightNeutral,
		})
	}

	if candidate.Title != "" {
		elems = append(elems, models.ProfileElement{
			ID:            fmt.Sprintf("spec-%d", candidate.ID),
			Type:          models.ElementSpecialization,
			Value:         fmt.Sprintf("Specializes in %s", candidate.Title),
			HighlightType: models.HighlightNeutral,
		})
	}

	return elems
}

func connectionText(candidate *models.CandidateRecord) string {
	if candidate.HasMutualConnection() {
		who := candidate.MutualConnections
		if who == "" {
			who = "others"
		}
		return fmt.Sprintf("Mutual connection with %s", who)
	}
	return fmt.Sprintf("%s connection", candidate.ConnectionType)
}

// ToggleHighlight flips the highlight state of the element with the given ID.
// Tagging with the element's current type clears it back to neutral; tagging
// with the other type overwrites. Unknown IDs are a no-op returning false.
func ToggleHighlight(elems []models.ProfileElement, elementID string, highlight models.HighlightType) bool {
	for i := range elems {
		if elems[i].ID != elementID {
			continue
		}
		if elems[i].Highlighted && elems[i].HighlightType == highlight {
			elems[i].Highlighted = false
			elems[i].HighlightType = models.HighlightNeutral
		} else {
			elems[i].Highlighted = true
			elems[i].HighlightType = highlight
		}
		return true
	}
	return false
}

// Highlighted returns the IDs of elements currently tagged with the given
// highlight type.
func Highlighted(elems []models.ProfileElement, highlight models.HighlightType) []string {
	var ids []string
	for _, el := range elems {
		if el.Highlighted && el.HighlightType == highlight {
			ids = append(ids, el.ID)
		}
	}
	return ids
}
