package extractor

import (
	"recruiterpro/internal/models"
)

// Web search engines yield generic hits, not candidate cards.
type webEngineRules struct {
	queryParam      string
	inputSelectors  []string
	resultSelectors []string
	titleSelectors  []string
	snippetSels     []string
	linkSelectors   []string
}

var webEngines = map[string]webEngineRules{
	SourceGoogle: {
		queryParam:      "q",
		inputSelectors:  []string{"input[name='q']", "textarea[name='q']"},
		resultSelectors: []string{"div.g"},
		titleSelectors:  []string{"h3"},
		snippetSels:     []string{".VwiC3b", ".IsZvec", ".st"},
		linkSelectors:   []string{"a"},
	},
	SourceBing: {
		queryParam:      "q",
		inputSelectors:  []string{"input[name='q']", "#sb_form_q"},
		resultSelectors: []string{"li.b_algo"},
		titleSelectors:  []string{"h2"},
		snippetSels:     []string{".b_caption p", "p"},
		linkSelectors:   []string{"h2 a", "a"},
	},
	SourceDuckDuckGo: {
		queryParam:      "q",
		inputSelectors:  []string{"input[name='q']", "#search_form_input"},
		resultSelectors: []string{".result", ".web-result"},
		titleSelectors:  []string{".result__title", "h2"},
		snippetSels:     []string{".result__snippet", "[data-result='snippet']"},
		linkSelectors:   []string{".result__a", "a"},
	},
}

func (e *Extractor) extractWebEngine(snap PageSnapshot, data *models.SearchData) {
	rules, ok := webEngines[data.Source]
	if !ok {
		return
	}

	data.Query = resolveQuery(snap, rules.queryParam, rules.inputSelectors...)

	nodes := selectFirst(snap, rules.resultSelectors...)
	for _, node := range nodes {
		hit := &models.WebResult{
			Title:   firstText(node, rules.titleSelectors...),
			Snippet: firstText(node, rules.snippetSels...),
			URL:     firstAttr(node, "href", rules.linkSelectors...),
		}
		if hit.Title == "" {
			continue
		}
		data.Results = append(data.Results, models.WebSearchResult(hit))
	}
}
