// Package web exposes the webhook surface the telephony provider drives and
// the small JSON API operators use to inspect transactions and start calls.
package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/flow"
	"github.com/Akshit7103/IVR/internal/store"
	"github.com/Akshit7103/IVR/internal/telephony"
)

// Flow is the step engine surface the handlers consume.
type Flow interface {
	Enter(ctx context.Context, txnID string, step int) (flow.Reply, error)
	Gather(step, retry int) (flow.GatherSpec, flow.Reply, error)
	Respond(ctx context.Context, txnID string, step, retry int, speech string) (flow.Reply, error)
}

// StatusRecorder reconciles provider call-status events with dispositions.
type StatusRecorder interface {
	ReconcileStatus(ctx context.Context, txnID, callStatus string) error
}

// CallStarter places outbound verification calls.
type CallStarter interface {
	StartCall(ctx context.Context, txnID string) (*telephony.Call, error)
}

// Server is the IVR web server.
type Server struct {
	flow      Flow
	recorder  StatusRecorder
	starter   CallStarter
	store     store.Store
	publicURL string
	log       *zap.Logger
	router    *gin.Engine
}

// NewServer creates the web server and registers all routes.
func NewServer(f Flow, recorder StatusRecorder, starter CallStarter,
	s store.Store, publicURL string, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	srv := &Server{
		flow:      f,
		recorder:  recorder,
		starter:   starter,
		store:     s,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log,
		router:    router,
	}

	// Provider webhooks
	router.POST("/voice/:id/:step", srv.handleVoiceStep)
	router.POST("/voice/:id/:step/listen", srv.handleVoiceListen)
	router.POST("/voice/:id/:step/response", srv.handleVoiceResponse)
	router.POST("/status/:id", srv.handleStatus)

	// Operator API
	router.GET("/transactions", srv.handleListTransactions)
	router.POST("/update_phone/:id", srv.handleUpdatePhone)
	router.POST("/set_action/:id", srv.handleSetAction)
	router.POST("/call/:id", srv.handleStartCall)

	router.GET("/healthz", srv.handleHealth)

	return srv
}

// Router returns the underlying handler, for embedding in an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
