package extractor

import (
	"fmt"

	"recruiterpro/internal/common/metrics"
	"recruiterpro/internal/models"
)

var indeedResultSelectors = []string{
	".jobsearch-SerpJobCard",
	".job_seen_beacon",
}

var zipRecruiterResultSelectors = []string{
	".job_card",
	"article.job_result",
}

func (e *Extractor) extractIndeed(snap PageSnapshot, data *models.SearchData) {
	data.Query = resolveQuery(snap, "q", "#what")
	data.ResultsCount = firstText(asNodeRoot(snap), "#searchCountPages")

	nodes := selectFirst(snap, indeedResultSelectors...)
	for i, node := range nodes {
		candidate := e.safeJobCandidate(node, i+1, data.Query, SourceIndeed,
			[]string{".title a", "h2.jobTitle a", "h2.jobTitle span"},
			[]string{".company", "[data-testid='company-name']"},
			[]string{".location", "[data-testid='text-location']"},
		)
		if candidate != nil {
			data.Results = append(data.Results, models.CandidateResult(candidate))
		}
	}
}

func (e *Extractor) extractZipRecruiter(snap PageSnapshot, data *models.SearchData) {
	data.Query = resolveQuery(snap, "search", "#search-keyword")
	data.ResultsCount = firstText(asNodeRoot(snap), ".results_total", ".job_results_headline")

	nodes := selectFirst(snap, zipRecruiterResultSelectors...)
	for i, node := range nodes {
		candidate := e.safeJobCandidate(node, i+1, data.Query, SourceZipRecruiter,
			[]string{".job_title", "h2.title"},
			[]string{".company_name", ".hiring_company"},
			[]string{".location", ".job_location"},
		)
		if candidate != nil {
			data.Results = append(data.Results, models.CandidateResult(candidate))
		}
	}
}

// safeJobCandidate extracts one job board card. Job boards list postings
// rather than people, so the card title doubles as both name and current
// position.
func (e *Extractor) safeJobCandidate(node Node, id int, query, source string, titleSels, companySels, locationSels []string) (candidate *models.CandidateRecord) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ExtractionRecordsSkipped.WithLabelValues(source).Inc()
			e.logger.Warn("skipping malformed result node", map[string]interface{}{
				"source": source,
				"index":  id,
				"error":  fmt.Sprint(r),
			})
			candidate = nil
		}
	}()

	name := firstText(node, titleSels...)
	if name == "" {
		return nil
	}

	candidate = &models.CandidateRecord{
		ID:               id,
		Name:             name,
		CurrentPosition:  name,
		CurrentWorkplace: firstText(node, companySels...),
		Location:         firstText(node, locationSels...),
		ProfileURL:       firstAttr(node, "href", titleSels...),
	}
	e.finishCandidate(candidate, query)
	return candidate
}
