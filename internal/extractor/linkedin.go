package extractor

import (
	"fmt"
	"strings"

	"recruiterpro/internal/common/metrics"
	"recruiterpro/internal/models"
)

// Selector fallback chains for LinkedIn result items. Ordered newest layout
// first.
var linkedInResultSelectors = []string{
	".entity-result__item",
	".search-result__occluded-item",
	".reusable-search__result-container",
	".search-result",
}

var linkedInRecruiterSelectors = []string{
	".artdeco-list__item",
	".profile-list__border-bottom",
	".profile-content",
}

func (e *Extractor) extractLinkedIn(snap PageSnapshot, data *models.SearchData) {
	data.Query = resolveQuery(snap, "keywords", ".search-global-typeahead__input")
	data.ResultsCount = firstText(asNodeRoot(snap), ".search-results-container h2", ".artdeco-pill")

	// Recruiter seats render a different result list.
	if strings.Contains(snap.URL().Path, "/talent/search") {
		e.extractLinkedInRecruiter(snap, data)
		return
	}

	nodes := selectFirst(snap, linkedInResultSelectors...)
	for i, node := range nodes {
		candidate := e.safeLinkedInCandidate(node, i+1, data.Query)
		if candidate != nil {
			data.Results = append(data.Results, models.CandidateResult(candidate))
		}
	}
}

// safeLinkedInCandidate extracts one result node, absorbing panics from
// malformed markup so a single bad node never kills the pass.
func (e *Extractor) safeLinkedInCandidate(node Node, id int, query string) (candidate *models.CandidateRecord) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ExtractionRecordsSkipped.WithLabelValues(SourceLinkedIn).Inc()
			e.logger.Warn("skipping malformed result node", map[string]interface{}{
				"source": SourceLinkedIn,
				"index":  id,
				"error":  fmt.Sprint(r),
			})
			candidate = nil
		}
	}()

	name := firstText(node, ".entity-result__title-text a", ".app-aware-link .actor-name", ".actor-name")
	if name == "" {
		return nil
	}

	title := firstText(node, ".entity-result__primary-subtitle", ".entity-result__summary", ".subline-level-1")
	location := firstText(node, ".entity-result__secondary-subtitle", ".subline-level-2")
	connection := firstText(node, ".entity-result__badge-text", ".distance-badge")
	mutual := firstText(node, ".member-insights__connection-count")
	employment := firstText(node, ".entity-result__summary", ".entity-result__primary-subtitle")
	education := firstText(node, ".entity-result__education")
	profileURL := firstAttr(node, "href", ".entity-result__title-text a", ".app-aware-link")

	position, workplace := splitEmployment(employment)

	connectionType := connection
	if strings.Contains(strings.ToLower(connection), "mutual") || mutual != "" {
		connectionType = models.ConnectionMutual
	}

	candidate = &models.CandidateRecord{
		ID:                id,
		Name:              name,
		Title:             title,
		Location:          location,
		CurrentPosition:   position,
		CurrentWorkplace:  workplace,
		Education:         education,
		ConnectionType:    connectionType,
		MutualConnections: mutual,
		ProfileStatus:     connection,
		ProfileURL:        profileURL,
	}
	e.finishCandidate(candidate, query)
	return candidate
}

func (e *Extractor) extractLinkedInRecruiter(snap PageSnapshot, data *models.SearchData) {
	nodes := selectFirst(snap, linkedInRecruiterSelectors...)
	for i, node := range nodes {
		candidate := e.safeRecruiterCandidate(node, i+1, data.Query)
		if candidate != nil {
			data.Results = append(data.Results, models.CandidateResult(candidate))
		}
	}
}

func (e *Extractor) safeRecruiterCandidate(node Node, id int, query string) (candidate *models.CandidateRecord) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ExtractionRecordsSkipped.WithLabelValues(SourceLinkedIn).Inc()
			e.logger.Warn("skipping malformed result node", map[string]interface{}{
				"source": SourceLinkedIn,
				"index":  id,
				"error":  fmt.Sprint(r),
			})
			candidate = nil
		}
	}()

	name := firstText(node, ".artdeco-entity-lockup__title", "h3", "h2")
	if name == "" {
		return nil
	}

	title := firstText(node, ".artdeco-entity-lockup__subtitle", ".lockup__content-title")
	location := firstText(node, ".artdeco-entity-lockup__caption", ".lockup__content-location")
	employment := firstText(node, ".artdeco-entity-lockup__subtitle", ".history-group .position")
	education := firstText(node, ".education-item", ".history-group .education")
	profileURL := firstAttr(node, "href", ".artdeco-entity-lockup__title a", "a")

	position, workplace := splitEmployment(employment)

	candidate = &models.CandidateRecord{
		ID:               id,
		Name:             name,
		Title:            title,
		Location:         location,
		CurrentPosition:  position,
		CurrentWorkplace: workplace,
		Education:        education,
		ConnectionType:   "2nd",
		ProfileStatus:    "2nd",
		ProfileURL:       profileURL,
	}
	e.finishCandidate(candidate, query)
	return candidate
}
