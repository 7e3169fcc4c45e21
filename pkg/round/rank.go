package round

import "sort"

// byStrengthDesc sorts hands strongest first. The relative order of tied
// hands is unspecified here; the presentation sort settles it.
type byStrengthDesc []*Hand

func (s byStrengthDesc) Len() int {
	return len(s)
}

func (s byStrengthDesc) Less(i, j int) bool {
	return s[i].Rank.Compare(s[j].Rank) > 0
}

func (s byStrengthDesc) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// byStandingThenOwner is the presentation order: standing ascending, with
// owner id breaking ties for display stability.
type byStandingThenOwner []*Hand

func (s byStandingThenOwner) Len() int {
	return len(s)
}

func (s byStandingThenOwner) Less(i, j int) bool {
	if s[i].Standing != s[j].Standing {
		return s[i].Standing < s[j].Standing
	}

	return s[i].OwnerID < s[j].OwnerID
}

func (s byStandingThenOwner) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// RankHands classifies every hand, sorts by strength, and assigns dense
// competition standings: the strongest hand gets standing 1, tied hands
// share a standing, and the next weaker hand gets the previous standing
// plus one (1,1,2 rather than 1,1,3).
//
// Classification is idempotent; hands that already carry a rank keep it,
// so ranking an already-ranked round yields the same standings. Returns
// the hands sorted by standing then owner id.
func (r *Round) RankHands(hands []*Hand) ([]*Hand, error) {
	for _, hand := range hands {
		if hand.Rank != nil {
			continue
		}

		if r.classifier == nil {
			return nil, ErrUnclassified
		}

		rank, err := r.classifier.Classify(hand.Cards)
		if err != nil {
			return nil, err
		}

		hand.Rank = rank
	}

	if len(hands) == 0 {
		return hands, nil
	}

	sort.Sort(byStrengthDesc(hands))

	hands[0].Standing = 1
	for i := 1; i < len(hands); i++ {
		if hands[i].Rank.Compare(hands[i-1].Rank) == 0 {
			hands[i].Standing = hands[i-1].Standing
		} else {
			hands[i].Standing = hands[i-1].Standing + 1
		}
	}

	sort.Sort(byStandingThenOwner(hands))

	return hands, nil
}
