package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/invoice-exporter/internal/compliance"
	"github.com/rezonia/invoice-exporter/internal/generator"
	"github.com/rezonia/invoice-exporter/internal/layout"
	"github.com/rezonia/invoice-exporter/internal/model"
)

// Config holds server configuration
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	CaptureTimeout  time.Duration
	OversampleScale int
	LogoTimeout     time.Duration
	Debug           bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *generator.Pipeline
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	captureOpts := layout.DefaultCaptureOptions()
	if config.OversampleScale > 0 {
		captureOpts.Scale = config.OversampleScale
	}
	if config.LogoTimeout > 0 {
		captureOpts.LogoTimeout = config.LogoTimeout
	}

	pipelineOpts := []generator.Option{
		generator.WithCaptureOptions(captureOpts),
	}
	if config.CaptureTimeout > 0 {
		pipelineOpts = append(pipelineOpts, generator.WithCaptureTimeout(config.CaptureTimeout))
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: generator.NewPipeline(pipelineOpts...),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Export endpoints
		v1.POST("/export/xml", s.handleExportXML)
		v1.POST("/export/pdf", s.handleExportPDF)

		// Validate endpoint
		v1.POST("/validate", s.handleValidate)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// bindSnapshot reads and validates the snapshot payload.
func bindSnapshot(c *gin.Context) (*model.Snapshot, bool) {
	var snap model.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot payload: " + err.Error()})
		return nil, false
	}
	if snap.Invoice.Number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invoice number is required"})
		return nil, false
	}
	return &snap, true
}

// statusFor maps generation errors onto HTTP statuses.
func statusFor(err error) int {
	var precond *model.PreconditionError
	if errors.As(err, &precond) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleExportXML(c *gin.Context) {
	snap, ok := bindSnapshot(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.GenerateXML(ctx, snap)
	if result.Error != nil {
		c.JSON(statusFor(result.Error), gin.H{"error": result.Error.Error()})
		return
	}

	writeArtifact(c, result)
}

func (s *Server) handleExportPDF(c *gin.Context) {
	snap, ok := bindSnapshot(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result := s.pipeline.GeneratePDF(ctx, snap)
	if result.Error != nil {
		c.JSON(statusFor(result.Error), gin.H{"error": result.Error.Error()})
		return
	}

	writeArtifact(c, result)
}

// writeArtifact streams the finished document as an attachment. Saving
// it anywhere is the caller's business; the server owns no storage.
func writeArtifact(c *gin.Context, result *generator.Result) {
	a := result.Artifact
	c.Header("Content-Disposition", `attachment; filename="`+a.Filename+`"`)
	if len(a.Warnings) > 0 {
		c.Header("X-Export-Warnings", strings.Join(a.Warnings, "; "))
	}
	c.Data(http.StatusOK, a.MIME, a.Content)
}

func (s *Server) handleValidate(c *gin.Context) {
	snap, ok := bindSnapshot(c)
	if !ok {
		return
	}

	if err := compliance.RequireOrgNumbers(snap.Company, &snap.Client); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidateResponse{
			Valid: false,
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{Valid: true})
}
