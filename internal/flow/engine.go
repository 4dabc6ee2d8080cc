// Package flow implements the call-flow state machine: the step graph, the
// keyword intent classifier, and disposition persistence. Step and retry
// state live entirely in the webhook URL, so every operation here is a pure
// request-scoped decision over the transaction store.
package flow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/store"
)

const (
	// maxRetries is the highest retry index at which the caller is still
	// re-prompted. Attempt indices run 0, 1, 2: three attempts total.
	maxRetries = 2

	gatherTimeoutSecs   = 5
	gatherLanguage      = "en-IN"
	gatherSpeechTimeout = "auto"
)

var (
	// ErrUnknownStep is returned for step numbers outside the graph.
	ErrUnknownStep = errors.New("unknown step")

	// ErrNoListenPhase is returned when a listen or response event targets
	// an announce-only step.
	ErrNoListenPhase = errors.New("step has no listen phase")
)

// Target names the next addressable point in the call: a step entry, or a
// step's listen phase at a given retry.
type Target struct {
	Step   int
	Listen bool
	Retry  int
}

// Reply is one webhook response: an utterance, optionally followed by a
// pause, and then either a redirect or a hangup. Every path through the
// graph speaks before it terminates.
type Reply struct {
	Say       string
	PauseSecs int
	Goto      *Target
	Hangup    bool
}

// GatherSpec describes the speech-gather instruction for a listen phase.
// The response target carries the same retry index so an ambiguous answer
// and a silence timeout consume the same budget.
type GatherSpec struct {
	Step          int
	Retry         int
	TimeoutSecs   int
	Language      string
	SpeechTimeout string
	Hints         []string
}

// Engine is the step engine. It is stateless between requests.
type Engine struct {
	store    store.Store
	recorder *Recorder
	log      *zap.Logger
}

// NewEngine creates a step engine over the given store and recorder.
func NewEngine(s store.Store, recorder *Recorder, log *zap.Logger) *Engine {
	return &Engine{store: s, recorder: recorder, log: log}
}

// Enter handles entry into a step: render the prompt, apply any entry side
// effect, and decide where the call goes next.
func (e *Engine) Enter(ctx context.Context, txnID string, step int) (Reply, error) {
	def, ok := steps[step]
	if !ok {
		return Reply{}, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}

	txn, err := e.store.Get(ctx, txnID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Reply{}, err
	}

	if def.resolve {
		if err := e.recorder.Set(ctx, txnID, DispositionResolved); err != nil {
			return Reply{}, err
		}
	}

	reply := Reply{Say: def.prompt(txn)}
	switch {
	case def.kind == stepQuestion:
		// Pause so the prompt never overlaps the listen window.
		reply.PauseSecs = 1
		reply.Goto = &Target{Step: step, Listen: true}
	case def.terminal:
		reply.Hangup = true
	default:
		reply.Goto = &Target{Step: def.next}
	}

	e.log.Debug("step entered",
		zap.String("txn_id", txnID), zap.Int("step", step))
	return reply, nil
}

// Gather returns the speech-gather instruction for a listen phase together
// with the fallback reply the provider executes on silence: a short
// re-prompt while budget remains, a goodbye and hangup once it is spent.
func (e *Engine) Gather(step, retry int) (GatherSpec, Reply, error) {
	def, ok := steps[step]
	if !ok {
		return GatherSpec{}, Reply{}, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	if def.kind != stepQuestion {
		return GatherSpec{}, Reply{}, fmt.Errorf("%w: %d", ErrNoListenPhase, step)
	}

	spec := GatherSpec{
		Step:          step,
		Retry:         retry,
		TimeoutSecs:   gatherTimeoutSecs,
		Language:      gatherLanguage,
		SpeechTimeout: gatherSpeechTimeout,
		Hints:         def.hints,
	}

	if retry >= maxRetries {
		return spec, Reply{
			Say:    "We did not receive your answer. Goodbye.",
			Hangup: true,
		}, nil
	}

	return spec, Reply{
		Say:       def.reprompt,
		PauseSecs: 1,
		Goto:      &Target{Step: step, Listen: true, Retry: retry + 1},
	}, nil
}

// Respond consumes a listen result: classify the speech and pick the next
// step per the transition table. Ambiguous answers consume a retry.
func (e *Engine) Respond(ctx context.Context, txnID string, step, retry int, speech string) (Reply, error) {
	def, ok := steps[step]
	if !ok {
		return Reply{}, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	if def.kind != stepQuestion {
		return Reply{}, fmt.Errorf("%w: %d", ErrNoListenPhase, step)
	}

	e.log.Debug("speech received",
		zap.String("txn_id", txnID), zap.Int("step", step),
		zap.Int("retry", retry), zap.String("speech", speech))

	switch step {
	case 0:
		switch ClassifyYesNo(speech) {
		case IntentAffirmative:
			// Customer authorized the transaction: nothing to dispute.
			if err := e.recorder.Set(ctx, txnID, DispositionResolved); err != nil {
				return Reply{}, err
			}
			return Reply{
				Say:    "Thank you for confirming. No further action is required. Have a great day!",
				Hangup: true,
			}, nil
		case IntentNegative:
			return Reply{Goto: &Target{Step: 1}}, nil
		}

	case 1, 2:
		// Both answers advance; the question collects context without
		// branching on it.
		if ClassifyYesNo(speech) != IntentAmbiguous {
			return Reply{Goto: &Target{Step: step + 1}}, nil
		}

	case 4:
		switch ClassifyDelivery(speech) {
		case DeliveryPhysical:
			return Reply{Goto: &Target{Step: 5}}, nil
		case DeliveryVirtual:
			return Reply{Goto: &Target{Step: 8}}, nil
		}
	}

	return Reply{
		Say:  "Sorry, I did not catch that.",
		Goto: &Target{Step: step, Listen: true, Retry: retry + 1},
	}, nil
}
