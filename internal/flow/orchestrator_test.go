package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/store"
	"github.com/Akshit7103/IVR/internal/telephony"
)

// MockDialer implements telephony.Dialer for testing.
type MockDialer struct {
	CreateCallFunc func(ctx context.Context, req telephony.CallRequest) (*telephony.Call, error)
	Requests       []telephony.CallRequest
}

func (m *MockDialer) CreateCall(ctx context.Context, req telephony.CallRequest) (*telephony.Call, error) {
	m.Requests = append(m.Requests, req)
	if m.CreateCallFunc != nil {
		return m.CreateCallFunc(ctx, req)
	}
	return &telephony.Call{SID: "CA123", Status: "queued"}, nil
}

func newTestOrchestrator(t *testing.T, dialer *MockDialer, txns ...store.Transaction) (*Orchestrator, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore(txns...)
	recorder := NewRecorder(s, zap.NewNop())
	return NewOrchestrator(s, recorder, dialer,
		"https://ivr.example.com/", "+911234567890", zap.NewNop()), s
}

func TestStartCall_PlacesCallWithWebhookURLs(t *testing.T) {
	dialer := &MockDialer{}
	orchestrator, _ := newTestOrchestrator(t, dialer, testTransaction())

	call, err := orchestrator.StartCall(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "CA123", call.SID)

	require.Len(t, dialer.Requests, 1)
	req := dialer.Requests[0]
	assert.Equal(t, "+919876543210", req.To)
	assert.Equal(t, "+911234567890", req.From)
	assert.Equal(t, "https://ivr.example.com/voice/txn-1/step0", req.VoiceURL)
	assert.Equal(t, "https://ivr.example.com/status/txn-1", req.StatusCallbackURL)
	assert.Equal(t, []string{"completed", "no-answer", "busy", "failed"}, req.StatusEvents)
}

func TestStartCall_ConnectingRecordedBeforeDialing(t *testing.T) {
	var actionAtDialTime string
	var s *store.MemoryStore

	dialer := &MockDialer{
		CreateCallFunc: func(ctx context.Context, req telephony.CallRequest) (*telephony.Call, error) {
			txn, err := s.Get(ctx, "txn-1")
			if err != nil {
				return nil, err
			}
			actionAtDialTime = txn.Action
			return &telephony.Call{SID: "CA123"}, nil
		},
	}
	orchestrator, memStore := newTestOrchestrator(t, dialer, testTransaction())
	s = memStore

	_, err := orchestrator.StartCall(context.Background(), "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "Connecting", actionAtDialTime)
}

func TestStartCall_MissingTransaction(t *testing.T) {
	dialer := &MockDialer{}
	orchestrator, _ := newTestOrchestrator(t, dialer)

	_, err := orchestrator.StartCall(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, dialer.Requests, "dialer must not be invoked for a missing record")
}

func TestStartCall_DialerFailure(t *testing.T) {
	dialer := &MockDialer{
		CreateCallFunc: func(ctx context.Context, req telephony.CallRequest) (*telephony.Call, error) {
			return nil, errors.New("provider unavailable")
		},
	}
	orchestrator, s := newTestOrchestrator(t, dialer, testTransaction())

	_, err := orchestrator.StartCall(context.Background(), "txn-1")
	require.Error(t, err)

	// Connecting stays; the status stream never fires for a call that was
	// never placed, and the operator sees the stuck state.
	assert.Equal(t, "Connecting", action(t, s, "txn-1"))
}
