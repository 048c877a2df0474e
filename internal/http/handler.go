package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/ocean-s2z/internal/domain"
	"go.ngs.io/ocean-s2z/internal/usecase"
)

// Handler handles HTTP requests for model extractions.
type Handler struct {
	extractionUC *usecase.ExtractionUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(extractionUC *usecase.ExtractionUseCase) *Handler {
	return &Handler{
		extractionUC: extractionUC,
	}
}

// GetVariables handles GET /v1/variables.
//
// Query parameters: vars (comma separated standard names), time (RFC3339,
// optional), x and y (comma separated native grid positions, paired) and
// z (comma separated depths in metres, optional).
func (h *Handler) GetVariables(c *gin.Context) {
	varsStr := c.Query("vars")
	if varsStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vars parameter is required"})
		return
	}
	req := usecase.ExtractionRequest{Variables: splitList(varsStr)}

	if timeStr := c.Query("time"); timeStr != "" {
		t, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid time (expected RFC3339): %v", err)})
			return
		}
		req.Time = t.UTC()
	}

	var err error
	for _, p := range []struct {
		name string
		dst  *[]float64
	}{
		{"x", &req.X},
		{"y", &req.Y},
		{"z", &req.Z},
	} {
		if *p.dst, err = parseFloats(c.Query(p.name)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %v", p.name, err)})
			return
		}
	}

	response, err := h.extractionUC.Execute(req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetReader handles GET /v1/reader.
func (h *Handler) GetReader(c *gin.Context) {
	c.JSON(http.StatusOK, h.extractionUC.Info())
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownVariable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedShape):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTimeOutOfRange),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, usecase.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := splitList(s)
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
