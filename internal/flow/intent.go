package flow

import "strings"

// Intent is the classification of a yes/no answer.
type Intent int

const (
	IntentAmbiguous Intent = iota
	IntentAffirmative
	IntentNegative
)

func (i Intent) String() string {
	switch i {
	case IntentAffirmative:
		return "affirmative"
	case IntentNegative:
		return "negative"
	default:
		return "ambiguous"
	}
}

// Delivery is the classification of a card delivery preference.
type Delivery int

const (
	DeliveryAmbiguous Delivery = iota
	DeliveryPhysical
	DeliveryVirtual
)

func (d Delivery) String() string {
	switch d {
	case DeliveryPhysical:
		return "physical"
	case DeliveryVirtual:
		return "virtual"
	default:
		return "ambiguous"
	}
}

// Speech recognizers return noisy, partial transcriptions, so matching is
// deliberately permissive: a substring hit on any listed word wins. The two
// lists share no words, so order does not create ambiguity.
var (
	affirmativeWords = []string{"yes", "yeah", "yep", "correct", "true"}
	negativeWords    = []string{"no", "nope", "nah", "not", "never"}
)

// ClassifyYesNo maps recognized speech to a yes/no intent. It is a pure
// function of the lower-cased, trimmed input.
func ClassifyYesNo(speech string) Intent {
	speech = normalize(speech)
	if containsAny(speech, affirmativeWords) {
		return IntentAffirmative
	}
	if containsAny(speech, negativeWords) {
		return IntentNegative
	}
	return IntentAmbiguous
}

// ClassifyDelivery maps recognized speech to a delivery preference. Input
// naming both options, or neither, is ambiguous.
func ClassifyDelivery(speech string) Delivery {
	speech = normalize(speech)
	physical := strings.Contains(speech, "physical")
	virtual := strings.Contains(speech, "virtual")

	switch {
	case physical && !virtual:
		return DeliveryPhysical
	case virtual && !physical:
		return DeliveryVirtual
	default:
		return DeliveryAmbiguous
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
