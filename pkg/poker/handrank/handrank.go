package handrank

import (
	"errors"
	"math"
	"showdown-server/pkg/deck"
	"sort"
)

// HandSize is the number of cards in a standard poker hand
const HandSize = 5

// ErrHandSize is an error when a hand does not contain exactly five cards
var ErrHandSize = errors.New("hand must contain exactly five cards")

// HandRank is the rank of a five-card poker hand. Strength is a single
// comparable value encoding the category and the within-category kickers,
// so two HandRanks compare equal only if the hands are of identical value.
type HandRank struct {
	Category Category `json:"category"`
	Strength int      `json:"strength"`
}

// Compare performs a three-way comparison between two hand ranks.
// Returns < 0 if h is weaker than other, 0 if equal, and > 0 if stronger.
func (h *HandRank) Compare(other *HandRank) int {
	switch {
	case h.Strength < other.Strength:
		return -1
	case h.Strength > other.Strength:
		return 1
	}

	return 0
}

func (h *HandRank) String() string {
	return h.Category.String()
}

type sortByRank deck.Hand

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// New ranks a five-card poker hand.
// Card order does not matter; the rank is a pure function of the cards.
func New(cards deck.Hand) (*HandRank, error) {
	if len(cards) != HandSize {
		return nil, ErrHandSize
	}

	// clone to prevent modifying original
	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.Sort(sort.Reverse(sortByRank(sorted)))

	flush := isFlush(sorted)
	straightHigh := straightHighCard(sorted)

	if straightHigh > 0 && flush {
		if straightHigh == deck.Ace {
			return &HandRank{
				Category: RoyalFlush,
				Strength: calculateStrength(RoyalFlush, nil),
			}, nil
		}

		return &HandRank{
			Category: StraightFlush,
			Strength: calculateStrength(StraightFlush, []int{straightHigh}),
		}, nil
	}

	quads, trips, pairs, kickers := groupByRank(sorted)

	switch {
	case len(quads) > 0:
		return newHandRank(FourOfAKind, append(quads, kickers...)), nil
	case len(trips) > 0 && len(pairs) > 0:
		return newHandRank(FullHouse, []int{trips[0], pairs[0]}), nil
	case flush:
		return newHandRank(Flush, ranks(sorted)), nil
	case straightHigh > 0:
		return newHandRank(Straight, []int{straightHigh}), nil
	case len(trips) > 0:
		return newHandRank(ThreeOfAKind, append(trips, kickers...)), nil
	case len(pairs) == 2:
		return newHandRank(TwoPair, append(pairs, kickers...)), nil
	case len(pairs) == 1:
		return newHandRank(OnePair, append(pairs, kickers...)), nil
	}

	return newHandRank(HighCard, ranks(sorted)), nil
}

func newHandRank(category Category, kickers []int) *HandRank {
	return &HandRank{
		Category: category,
		Strength: calculateStrength(category, kickers),
	}
}

// calculateStrength packs a category and up to five kicker ranks into a
// single int. Base 15 keeps each rank (2-14) in its own digit.
func calculateStrength(category Category, cards []int) int {
	fiveCards := make([]int, 5)
	copy(fiveCards, cards)

	strength := math.Pow(15, 5) * float64(category)
	for i := 0; i < 5; i++ {
		val := fiveCards[4-i]
		strength += math.Pow(15, float64(i)) * float64(val)
	}

	return int(strength)
}

func isFlush(cards deck.Hand) bool {
	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			return false
		}
	}

	return true
}

// straightHighCard returns the high card of a straight, or 0 if the cards
// do not form one. Expects the cards sorted descending by rank. The wheel
// (A-5-4-3-2) counts as a five-high straight.
func straightHighCard(cards deck.Hand) int {
	for i, card := range cards[1:] {
		if card.Rank != cards[i].Rank-1 {
			// ace can act low against a 5-high run
			if i == 0 && cards[0].Rank == deck.Ace && card.Rank == 5 {
				continue
			}

			return 0
		}
	}

	if cards[0].Rank == deck.Ace && cards[1].Rank == 5 {
		return 5
	}

	return cards[0].Rank
}

// groupByRank splits the hand into quads, trips, pairs, and ungrouped
// kickers. Expects the cards sorted descending by rank; each returned
// slice is likewise descending.
func groupByRank(cards deck.Hand) (quads, trips, pairs, kickers []int) {
	prevRank := math.MaxInt8
	count := 0

	record := func(rank, num int) {
		switch num {
		case 4:
			quads = append(quads, rank)
		case 3:
			trips = append(trips, rank)
		case 2:
			pairs = append(pairs, rank)
		default:
			kickers = append(kickers, rank)
		}
	}

	for _, card := range cards {
		if card.Rank == prevRank {
			count++
			continue
		}

		if prevRank != math.MaxInt8 {
			record(prevRank, count)
		}

		prevRank = card.Rank
		count = 1
	}

	record(prevRank, count)

	return quads, trips, pairs, kickers
}

func ranks(cards deck.Hand) []int {
	r := make([]int, len(cards))
	for i, card := range cards {
		r[i] = card.Rank
	}

	return r
}
