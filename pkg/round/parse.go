package round

import (
	"fmt"
	"showdown-server/pkg/deck"
	"strconv"
	"strings"
)

// one owner id plus five cards
const handTokens = 6

type rankLabel struct {
	label string
	rank  int
}

type suitLabel struct {
	label string
	suit  deck.Suit
}

// Card token labels are tried in declaration order and the first match
// wins. Spelled-out names are declared before the short codes so that
// "acehearts" binds the rank "ace" rather than "a" with a clubs remainder.
var rankLabels = []rankLabel{
	{"two", 2}, {"2", 2},
	{"three", 3}, {"3", 3},
	{"four", 4}, {"4", 4},
	{"five", 5}, {"5", 5},
	{"six", 6}, {"6", 6},
	{"seven", 7}, {"7", 7},
	{"eight", 8}, {"8", 8},
	{"nine", 9}, {"9", 9},
	{"ten", 10}, {"10", 10},
	{"jack", deck.Jack}, {"j", deck.Jack},
	{"queen", deck.Queen}, {"q", deck.Queen},
	{"king", deck.King}, {"k", deck.King},
	{"ace", deck.Ace}, {"a", deck.Ace},
}

var suitLabels = []suitLabel{
	{"clubs", deck.Clubs}, {"c", deck.Clubs},
	{"diamonds", deck.Diamonds}, {"d", deck.Diamonds},
	{"hearts", deck.Hearts}, {"h", deck.Hearts},
	{"spades", deck.Spades}, {"s", deck.Spades},
}

// parseCardToken matches a token case-insensitively against the rank
// labels, consumes the matched prefix, then matches the suit labels against
// a prefix of the remainder. The rank must match first since a suit label
// could otherwise claim part of a rank name. Returns nil if the token does
// not form a card.
func parseCardToken(token string) *deck.Card {
	remainder := strings.ToLower(token)

	rank := 0
	for _, rl := range rankLabels {
		if strings.HasPrefix(remainder, rl.label) {
			rank = rl.rank
			remainder = remainder[len(rl.label):]
			break
		}
	}

	if rank == 0 {
		return nil
	}

	for _, sl := range suitLabels {
		if strings.HasPrefix(remainder, sl.label) {
			return &deck.Card{
				Rank: rank,
				Suit: sl.suit,
			}
		}
	}

	return nil
}

// ParseHand parses a hand declaration of the form
// "<ownerId> <card1> <card2> <card3> <card4> <card5>" and registers the
// owner id and cards in the round's duplicate-tracking state.
//
// Validation fails fast: the owner id and any cards validated before the
// failing token remain registered. Duplicate cards are detected by rank and
// suit across the entire round, so "AH" collides with "AceHearts".
func (r *Round) ParseHand(line string) (*Hand, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyInput
	}

	tokens := strings.Fields(line)
	if len(tokens) != handTokens {
		return nil, fmt.Errorf("%w: got %d", ErrWrongTokenCount, len(tokens))
	}

	ownerID, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOwnerID, tokens[0])
	}

	if r.seenOwners[ownerID] {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateOwner, ownerID)
	}
	r.seenOwners[ownerID] = true

	hand := &Hand{OwnerID: ownerID}
	for _, token := range tokens[1:] {
		card := parseCardToken(token)
		if card == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCard, token)
		}

		key := deck.CardToString(card)
		if r.seenCards[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, token)
		}
		r.seenCards[key] = true

		hand.Cards.AddCard(card)
	}

	return hand, nil
}
