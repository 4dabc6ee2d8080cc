package flow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/store"
)

// Disposition is the externally visible resolution label recorded against a
// transaction's action field.
type Disposition string

const (
	DispositionConnecting   Disposition = "Connecting"
	DispositionResolved     Disposition = "Resolved"
	DispositionNotAnswered  Disposition = "Not Answered"
	DispositionDisconnected Disposition = "Disconnected"

	// DispositionMarkedFraud is set manually by operators, never by the
	// call flow, but status reconciliation must not overwrite it.
	DispositionMarkedFraud Disposition = "Mark As Fraud"
)

// isTerminal reports whether an action label is an explicit resolution that
// status callbacks must not downgrade.
func isTerminal(action string) bool {
	return action == string(DispositionResolved) ||
		action == string(DispositionMarkedFraud)
}

// Recorder is the only path through which call-flow logic touches a
// transaction's disposition.
type Recorder struct {
	store store.Store
	log   *zap.Logger
}

// NewRecorder creates a disposition recorder over the given store.
func NewRecorder(s store.Store, log *zap.Logger) *Recorder {
	return &Recorder{store: s, log: log}
}

// Set overwrites the transaction's action label. A missing record is a
// no-op: the recorder never creates records. Safe to call repeatedly with
// the same value.
func (r *Recorder) Set(ctx context.Context, txnID string, d Disposition) error {
	txn, err := r.store.Get(ctx, txnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.log.Warn("disposition for unknown transaction dropped",
				zap.String("txn_id", txnID), zap.String("disposition", string(d)))
			return nil
		}
		return err
	}

	txn.Action = string(d)
	if err := r.store.Put(ctx, txn); err != nil {
		return err
	}

	r.log.Info("disposition recorded",
		zap.String("txn_id", txnID), zap.String("disposition", string(d)))
	return nil
}

// ReconcileStatus maps a provider call-status event to a disposition. The
// status stream is independent of the step stream and may arrive after the
// script already resolved the call, so updates are monotone: "completed"
// only downgrades a call that never reached an explicit resolution.
func (r *Recorder) ReconcileStatus(ctx context.Context, txnID, callStatus string) error {
	switch callStatus {
	case "no-answer", "busy":
		return r.Set(ctx, txnID, DispositionNotAnswered)

	case "failed":
		return r.Set(ctx, txnID, DispositionDisconnected)

	case "completed":
		txn, err := r.store.Get(ctx, txnID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}
		if isTerminal(txn.Action) {
			return nil
		}
		return r.Set(ctx, txnID, DispositionDisconnected)

	default:
		r.log.Debug("ignoring call status",
			zap.String("txn_id", txnID), zap.String("status", callStatus))
		return nil
	}
}
