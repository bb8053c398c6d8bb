// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/eds-records/internal/export"
	"github.com/pdiddy/eds-records/internal/index"
	"github.com/pdiddy/eds-records/internal/record"
)

type errorResponse struct {
	Error string `json:"error"`
}

func fail(c *gin.Context, status int, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

func ignoreHandler(c *gin.Context) {
}

func (s *Server) versionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]string{"build": s.version})
}

func (s *Server) healthCheckHandler(c *gin.Context) {
	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}

	hc := hcResp{Healthy: true, Message: "not configured"}
	if s.store != nil {
		hc = hcResp{Healthy: true}
		if _, err := s.store.Count(c.Request.Context()); err != nil {
			hc = hcResp{Healthy: false, Message: err.Error()}
		}
	}

	status := http.StatusOK
	if !hc.Healthy {
		status = http.StatusInternalServerError
	}
	c.JSON(status, map[string]hcResp{"index": hc})
}

// normalizeHandler normalizes a posted raw result. The format query
// parameter selects attrs (default), solr, csl or raw output. Raw echoes
// each unwrapped source record.
func (s *Server) normalizeHandler(c *gin.Context) {
	format := c.DefaultQuery("format", "attrs")
	switch format {
	case "attrs", "solr", "csl", "raw":
	default:
		fail(c, http.StatusBadRequest, errors.New("unsupported format "+strconv.Quote(format)))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		fail(c, http.StatusBadRequest, err)
		return
	}

	recs, err := record.ParseAll(c.Request.Context(), body, s.norm)
	if err != nil {
		if errors.Is(err, record.ErrNoRecords) {
			fail(c, http.StatusUnprocessableEntity, err)
			return
		}
		fail(c, http.StatusBadRequest, err)
		return
	}

	switch format {
	case "raw":
		raws := make([]any, len(recs))
		for i, r := range recs {
			raws[i] = r.Raw().Interface()
		}
		c.JSON(http.StatusOK, raws)
	case "csl":
		items := make([]export.CSLItem, len(recs))
		for i, r := range recs {
			items[i] = export.ToCSLItem(r)
		}
		c.JSON(http.StatusOK, items)
	default:
		docs, err := export.AttrMaps(recs)
		if err != nil {
			fail(c, http.StatusInternalServerError, err)
			return
		}
		if format == "solr" {
			c.JSON(http.StatusOK, record.NewEnvelope(docs...))
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

func (s *Server) recordHandler(c *gin.Context) {
	if s.store == nil {
		fail(c, http.StatusServiceUnavailable, errors.New("index not configured"))
		return
	}
	attrs, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, index.ErrNotFound) {
		fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, attrs)
}

func (s *Server) searchHandler(c *gin.Context) {
	if s.store == nil {
		fail(c, http.StatusServiceUnavailable, errors.New("index not configured"))
		return
	}

	opts := index.QueryOptions{
		Query:      c.Query("q"),
		DatabaseID: c.Query("dbid"),
		Year:       c.Query("year"),
	}
	if v := c.Query("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, errors.New("rows must be a non-negative integer"))
			return
		}
		opts.MaxResults = n
	}
	if opts.IsEmpty() {
		fail(c, http.StatusBadRequest, errors.New("at least one of q, dbid or year is required"))
		return
	}

	hits, err := s.store.Search(c.Request.Context(), opts)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if hits == nil {
		hits = []index.Hit{}
	}
	c.JSON(http.StatusOK, map[string]any{"numFound": len(hits), "hits": hits})
}
