package round

import (
	"showdown-server/pkg/deck"
	"showdown-server/pkg/poker/handrank"
)

// Hand is a single owner's declared five-card hand.
// Rank is nil until the hand has been classified, and Standing is 0 until
// the round has been ranked.
type Hand struct {
	OwnerID  int                `json:"ownerId"`
	Cards    deck.Hand          `json:"cards"`
	Rank     *handrank.HandRank `json:"rank,omitempty"`
	Standing int                `json:"standing,omitempty"`
}

// Classifier assigns a comparable rank to a five-card hand.
// Implementations must be a pure function of the cards, independent of
// their order, and the resulting ranks must form a total order.
type Classifier interface {
	Classify(cards deck.Hand) (*handrank.HandRank, error)
}

// ClassifierFunc adapts a function to the Classifier interface
type ClassifierFunc func(cards deck.Hand) (*handrank.HandRank, error)

// Classify calls f
func (f ClassifierFunc) Classify(cards deck.Hand) (*handrank.HandRank, error) {
	return f(cards)
}

// Round tracks the owner ids and cards seen in one batch of hand
// submissions. A Round is not safe for concurrent use; the driver must
// process one line at a time.
type Round struct {
	classifier Classifier
	seenOwners map[int]bool
	seenCards  map[string]bool
}

// New returns a new Round with the given classifier.
// The classifier may be nil if every hand is classified before ranking.
func New(classifier Classifier) *Round {
	r := &Round{classifier: classifier}
	r.Reset()

	return r
}

// Reset clears the owner id and card duplicate-tracking state.
// The driver must call Reset between rounds; otherwise submissions in the
// next round fail spuriously as duplicates.
func (r *Round) Reset() {
	r.seenOwners = make(map[int]bool)
	r.seenCards = make(map[string]bool)
}
