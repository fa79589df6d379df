// Package api exposes the evaluation harness over HTTP: run a comparison,
// inspect the capability probe, fetch a past run of the current process.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/evaluation"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/preflight"
)

// Server wires the comparison runner into HTTP handlers. Completed runs are
// kept in memory only; nothing outlives the process.
type Server struct {
	cfg     config.Config
	runner  *evaluation.Runner
	checker *preflight.Checker

	mu   sync.Mutex
	runs map[string]storedRun
}

type storedRun struct {
	Report   evaluation.RunReport            `json:"report"`
	Outcomes map[string][]evaluation.Outcome `json:"outcomes"`
}

func NewServer(cfg config.Config, runner *evaluation.Runner, checker *preflight.Checker) *Server {
	return &Server{
		cfg:     cfg,
		runner:  runner,
		checker: checker,
		runs:    make(map[string]storedRun),
	}
}

// SetupRouter initializes the gin router. All /v1 routes pass the API key
// middleware; health stays public.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.Use(APIKeyMiddleware(s.cfg.API.Token))
	{
		v1.GET("/preflight", s.preflightHandler)
		v1.POST("/runs", s.createRunHandler)
		v1.GET("/runs/:id", s.getRunHandler)
	}

	return router
}

func (s *Server) preflightHandler(c *gin.Context) {
	report := s.checker.Check(c.Request.Context(), s.cfg)
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// CreateRunRequest is the payload for starting a comparison run.
type CreateRunRequest struct {
	SampleCount *int `json:"sample_count"`
}

func (s *Server) createRunHandler(c *gin.Context) {
	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	sampleCount := s.cfg.Evaluation.SampleCount
	if req.SampleCount != nil {
		if *req.SampleCount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sample_count must be >= 0"})
			return
		}
		sampleCount = *req.SampleCount
	}

	outcomes := s.runner.Run(c.Request.Context(), sampleCount)
	report := evaluation.Aggregate(outcomes, s.runner.Scorer.Name())

	run := storedRun{Report: report, Outcomes: outcomes}
	s.mu.Lock()
	s.runs[report.RunID] = run
	s.mu.Unlock()

	c.JSON(http.StatusCreated, run)
}

func (s *Server) getRunHandler(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	run, ok := s.runs[id]
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found: " + id})
		return
	}
	c.JSON(http.StatusOK, run)
}
