package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/extractor"
	"recruiterpro/internal/models"
)

// searchPayloadSchema accepts a raw page capture (pageUrl + html, the server
// runs extraction), a bare pageUrl (the server fetches and extracts the page
// itself, rescanning a few times for late-rendering result lists), or
// pre-extracted search data.
var searchPayloadSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"pageUrl":      map[string]interface{}{"type": "string", "minLength": 1},
		"html":         map[string]interface{}{"type": "string", "minLength": 1},
		"query":        map[string]interface{}{"type": "string"},
		"source":       map[string]interface{}{"type": "string", "minLength": 1},
		"resultsCount": map[string]interface{}{"type": "string"},
		"results": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"kind"},
			},
		},
	},
	"anyOf": []interface{}{
		map[string]interface{}{"required": []interface{}{"pageUrl"}},
		map[string]interface{}{"required": []interface{}{"source", "results"}},
	},
}

type searchRequest struct {
	PageURL string `json:"pageUrl"`
	HTML    string `json:"html"`
	models.SearchData
}

func (s *Server) handleCreateSearch(c *gin.Context) {
	start := time.Now()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respondError(c, errors.NewValidationError("unreadable request body"))
		return
	}

	if err := validateSearchPayload(body); err != nil {
		s.respondError(c, err)
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(c, errors.NewValidationError("invalid request body"))
		return
	}

	data := &req.SearchData
	switch {
	case req.HTML != "":
		snap, err := extractor.NewSnapshot(strings.NewReader(req.HTML), req.PageURL)
		if err != nil {
			s.respondError(c, errors.NewValidationError(err.Error()))
			return
		}
		data, err = s.extractor.Extract(c.Request.Context(), snap, req.Source)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if data == nil {
			s.respondError(c, errors.NewValidationError("page yielded no extractable results"))
			return
		}
	case req.PageURL != "":
		result, err := s.extractor.ExtractWithRetry(c.Request.Context(), func(ctx context.Context) (extractor.PageSnapshot, error) {
			return s.fetcher.Fetch(ctx, req.PageURL)
		}, req.Source, s.retryOpts)
		if err != nil {
			s.respondError(c, errors.NewValidationError(err.Error()))
			return
		}
		if result == nil {
			s.respondError(c, errors.NewValidationError("page yielded no extractable results"))
			return
		}
		data = result.Data
	default:
		if len(data.Results) == 0 {
			s.respondError(c, errors.NewValidationError("results must not be empty"))
			return
		}
	}

	search, _, err := s.store.CreateSearch(c.Request.Context(), currentUserID(c), data)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if s.obs != nil {
		s.obs.RecordSearchProcessed(c.Request.Context(), data.Source)
		s.obs.RecordRecordsExtracted(c.Request.Context(), int64(len(data.Results)), data.Source)
		s.obs.RecordSearchDuration(c.Request.Context(), time.Since(start), data.Source)
	}

	c.JSON(http.StatusCreated, gin.H{"searchId": search.ID})
}

func (s *Server) handleListSearches(c *gin.Context) {
	searches, err := s.store.ListSearches(c.Request.Context(), currentUserID(c), 50)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if searches == nil {
		searches = []models.Search{}
	}
	c.JSON(http.StatusOK, gin.H{"searches": searches})
}

func validateSearchPayload(body []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(searchPayloadSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("validation error: %v", err))
	}
	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, d := range result.Errors() {
			descs[i] = d.String()
		}
		return errors.NewValidationError(strings.Join(descs, "; "))
	}
	return nil
}
