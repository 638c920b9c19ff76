package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

const requestIDKey = "request_id"

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Indicators map[string]float64 `json:"indicators" binding:"required"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Service   string `json:"service"`
	Status    int    `json:"status"`
	Stage     string `json:"stage,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

// ModelResponse is the body of GET /model.
type ModelResponse struct {
	Schema    string                  `json:"schema"`
	Algorithm string                  `json:"algorithm"`
	K         int                     `json:"k"`
	Features  []schema.FeatureSpec    `json:"features"`
	Scaling   []artifact.FeatureScale `json:"scaling"`
	Labels    []label.Label           `json:"labels"`
	Digests   []artifact.Digest       `json:"digests"`
}

func response(status int, err error) ErrorResponse {
	return ErrorResponse{
		Service:   serviceName,
		Status:    status,
		Stage:     apperr.FailedStage(err),
		RequestID: apperr.RequestID(err),
		Error:     err.Error(),
	}
}

// PredictHandler scores one request.
func (s *Server) PredictHandler(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response(http.StatusBadRequest, err))
		return
	}

	res, err := s.p.Predict(req.Indicators)
	if err != nil {
		s.failed.Add(1)
		s.opts.Audit.RecordFailure(err)
		c.Set(requestIDKey, apperr.RequestID(err))
		status := http.StatusInternalServerError
		if apperr.IsRequest(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response(status, err))
		return
	}

	s.served.Add(1)
	s.opts.Audit.Record(res)
	c.Set(requestIDKey, res.RequestID)
	c.JSON(http.StatusOK, res)
}

// ModelHandler describes the loaded model.
func (s *Server) ModelHandler(c *gin.Context) {
	m := s.p.Model()
	c.JSON(http.StatusOK, ModelResponse{
		Schema:    s.p.Schema().Name(),
		Algorithm: m.Algorithm,
		K:         m.K,
		Features:  s.p.Schema().Features(),
		Scaling:   s.p.Scaling().Features,
		Labels:    s.p.Labels().All(),
		Digests:   s.p.Digests(),
	})
}

// HealthHandler reports liveness and counters.
func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(s.started).Round(time.Second).String(),
		"predictions": s.served.Load(),
		"rejected":    s.failed.Load(),
	})
}
