package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/flow"
	"github.com/Akshit7103/IVR/internal/store"
	"github.com/Akshit7103/IVR/internal/twiml"
)

const contentTypeXML = "text/xml; charset=utf-8"

// Webhook handlers

func (s *Server) handleVoiceStep(c *gin.Context) {
	step, ok := parseStep(c.Param("step"))
	if !ok {
		c.String(http.StatusNotFound, "unknown step")
		return
	}

	reply, err := s.flow.Enter(c.Request.Context(), c.Param("id"), step)
	if err != nil {
		s.writeFlowError(c, err)
		return
	}

	s.writeReply(c, c.Param("id"), reply)
}

func (s *Server) handleVoiceListen(c *gin.Context) {
	step, ok := parseStep(c.Param("step"))
	if !ok {
		c.String(http.StatusNotFound, "unknown step")
		return
	}
	retry := parseRetry(c.Query("retry"))

	spec, fallback, err := s.flow.Gather(step, retry)
	if err != nil {
		s.writeFlowError(c, err)
		return
	}

	r := twiml.New()
	r.Gather(twiml.GatherOpts{
		Action: fmt.Sprintf("%s/voice/%s/step%d/response?retry=%d",
			s.publicURL, c.Param("id"), spec.Step, spec.Retry),
		TimeoutSecs:   spec.TimeoutSecs,
		Language:      spec.Language,
		SpeechTimeout: spec.SpeechTimeout,
		Hints:         spec.Hints,
	})
	// The verbs below only run if the gather times out with no input.
	appendReply(r, s.publicURL, c.Param("id"), fallback)

	s.writeTwiML(c, r)
}

func (s *Server) handleVoiceResponse(c *gin.Context) {
	step, ok := parseStep(c.Param("step"))
	if !ok {
		c.String(http.StatusNotFound, "unknown step")
		return
	}
	retry := parseRetry(c.Query("retry"))
	speech := c.PostForm("SpeechResult")

	reply, err := s.flow.Respond(c.Request.Context(), c.Param("id"), step, retry, speech)
	if err != nil {
		s.writeFlowError(c, err)
		return
	}

	s.writeReply(c, c.Param("id"), reply)
}

func (s *Server) handleStatus(c *gin.Context) {
	txnID := c.Param("id")
	callStatus := c.PostForm("CallStatus")

	if err := s.recorder.ReconcileStatus(c.Request.Context(), txnID, callStatus); err != nil {
		s.log.Error("status reconciliation failed",
			zap.String("txn_id", txnID), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// Operator handlers

func (s *Server) handleListTransactions(c *gin.Context) {
	txns, err := s.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if txns == nil {
		txns = []store.Transaction{}
	}
	c.JSON(http.StatusOK, txns)
}

type updatePhoneRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
}

func (s *Server) handleUpdatePhone(c *gin.Context) {
	var req updatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_phone is required"})
		return
	}

	s.updateTransaction(c, func(txn *store.Transaction) {
		txn.ClientPhone = req.ClientPhone
	})
}

type setActionRequest struct {
	Action string `json:"action" binding:"required"`
}

func (s *Server) handleSetAction(c *gin.Context) {
	var req setActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	s.updateTransaction(c, func(txn *store.Transaction) {
		txn.Action = req.Action
	})
}

func (s *Server) updateTransaction(c *gin.Context, mutate func(*store.Transaction)) {
	ctx := c.Request.Context()

	txn, err := s.store.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mutate(txn)
	if err := s.store.Put(ctx, txn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleStartCall(c *gin.Context) {
	call, err := s.starter.StartCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		s.log.Error("start call failed",
			zap.String("txn_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "call_sid": call.SID})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Helpers

// parseStep extracts N from a "stepN" path segment.
func parseStep(segment string) (int, bool) {
	rest, ok := strings.CutPrefix(segment, "step")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseRetry(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Server) writeFlowError(c *gin.Context, err error) {
	if errors.Is(err, flow.ErrUnknownStep) || errors.Is(err, flow.ErrNoListenPhase) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	s.log.Error("voice step failed",
		zap.String("txn_id", c.Param("id")), zap.Error(err))
	c.String(http.StatusInternalServerError, "internal error")
}

func (s *Server) writeReply(c *gin.Context, txnID string, reply flow.Reply) {
	r := twiml.New()
	appendReply(r, s.publicURL, txnID, reply)
	s.writeTwiML(c, r)
}

func (s *Server) writeTwiML(c *gin.Context, r *twiml.Response) {
	doc, err := r.Render()
	if err != nil {
		s.log.Error("markup rendering failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, contentTypeXML, []byte(doc))
}

// appendReply translates an engine reply into markup verbs.
func appendReply(r *twiml.Response, publicURL, txnID string, reply flow.Reply) {
	if reply.Say != "" {
		r.Say(reply.Say)
	}
	if reply.PauseSecs > 0 {
		r.Pause(reply.PauseSecs)
	}
	switch {
	case reply.Hangup:
		r.Hangup()
	case reply.Goto != nil:
		r.Redirect(targetURL(publicURL, txnID, *reply.Goto))
	}
}

func targetURL(publicURL, txnID string, t flow.Target) string {
	if t.Listen {
		return fmt.Sprintf("%s/voice/%s/step%d/listen?retry=%d",
			publicURL, txnID, t.Step, t.Retry)
	}
	return fmt.Sprintf("%s/voice/%s/step%d", publicURL, txnID, t.Step)
}
