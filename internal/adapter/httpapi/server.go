package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"push-attach/internal/adapter/fcm"
	"push-attach/internal/domain/model"
	"push-attach/internal/domain/ports"
	"push-attach/internal/usecase"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	maxRequestBytes        = 1 << 20
)

// Deliverer is the use case the API drives.
type Deliverer interface {
	Deliver(ctx context.Context, req model.Request) (usecase.Receipt, error)
}

// Config holds the server dependencies.
type Config struct {
	ListenAddr     string
	Deliverer      Deliverer
	MetricsHandler http.Handler
	Logger         ports.Logger
}

// Server is the HTTP ingest boundary for notification payloads.
type Server struct {
	httpServer *http.Server
	logger     ports.Logger
}

type notificationRequest struct {
	Title   string        `json:"title"`
	Body    string        `json:"body"`
	Payload model.Payload `json:"payload"`
}

// NewServer wires gin routes for the ingest API.
func NewServer(cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return nil, errors.New("httpapi: listen address is required")
	}
	if cfg.Deliverer == nil {
		return nil, errors.New("httpapi: deliverer is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("httpapi: logger is required")
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(cfg),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: cfg.Logger,
	}, nil
}

// NewRouter builds the gin engine without binding a listener.
func NewRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(cfg.Logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	h := &handler{deliverer: cfg.Deliverer}
	v1 := engine.Group("/v1", limitBody(maxRequestBytes))
	v1.POST("/notifications", h.postNotification)
	v1.POST("/fcm/messages", h.postFCMMessage)

	return engine
}

// Start serves HTTP traffic until Shutdown is called.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully terminates the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

type handler struct {
	deliverer Deliverer
}

func (h *handler) postNotification(c *gin.Context) {
	var body notificationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		if tooLarge(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification body: " + err.Error()})
		return
	}
	if body.Payload == nil {
		body.Payload = model.Payload{}
	}

	h.deliver(c, model.Request{
		Title:   body.Title,
		Body:    body.Body,
		Payload: body.Payload,
	})
}

func (h *handler) postFCMMessage(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if tooLarge(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return
	}
	message, err := fcm.DecodeMessage(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.deliver(c, fcm.ToRequest(message))
}

func (h *handler) deliver(c *gin.Context, req model.Request) {
	receipt, err := h.deliverer.Deliver(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, receipt)
		return
	}
	c.JSON(http.StatusAccepted, receipt)
}

// limitBody caps request bodies; reads past the limit fail with *http.MaxBytesError.
func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func tooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)})
	return true
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(started),
		)
	}
}
