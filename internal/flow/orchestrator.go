package flow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/store"
	"github.com/Akshit7103/IVR/internal/telephony"
)

// Orchestrator places outbound verification calls and registers the webhook
// URLs that drive the step engine.
type Orchestrator struct {
	store      store.Store
	recorder   *Recorder
	dialer     telephony.Dialer
	publicURL  string
	fromNumber string
	log        *zap.Logger
}

// NewOrchestrator creates a call orchestrator. publicURL is the externally
// reachable base URL the provider calls back on.
func NewOrchestrator(s store.Store, recorder *Recorder, dialer telephony.Dialer,
	publicURL, fromNumber string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:      s,
		recorder:   recorder,
		dialer:     dialer,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
		fromNumber: fromNumber,
		log:        log,
	}
}

// StartCall places a call for the given transaction. The Connecting
// disposition is written before the provider is contacted, so a status
// callback racing the dial never observes a pre-call record.
func (o *Orchestrator) StartCall(ctx context.Context, txnID string) (*telephony.Call, error) {
	txn, err := o.store.Get(ctx, txnID)
	if err != nil {
		return nil, err
	}

	if err := o.recorder.Set(ctx, txnID, DispositionConnecting); err != nil {
		return nil, err
	}

	call, err := o.dialer.CreateCall(ctx, telephony.CallRequest{
		To:                txn.ClientPhone,
		From:              o.fromNumber,
		VoiceURL:          fmt.Sprintf("%s/voice/%s/step0", o.publicURL, txnID),
		StatusCallbackURL: fmt.Sprintf("%s/status/%s", o.publicURL, txnID),
		StatusEvents:      []string{"completed", "no-answer", "busy", "failed"},
	})
	if err != nil {
		return nil, fmt.Errorf("create call for %s: %w", txnID, err)
	}

	o.log.Info("call started",
		zap.String("txn_id", txnID), zap.String("call_sid", call.SID),
		zap.String("to", txn.ClientPhone))
	return call, nil
}
