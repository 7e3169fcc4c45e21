package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"showdown-server/pkg/poker/handrank"
	"showdown-server/pkg/round"
	"strings"

	"github.com/sirupsen/logrus"
)

var file = flag.String("f", "", "read hand declarations from a file instead of stdin")

// showdown judges one round of poker hands. Each input line declares one
// hand: "<ownerId> <card1> <card2> <card3> <card4> <card5>".
func main() {
	flag.Parse()

	input := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			logrus.WithError(err).Fatal("could not open input file")
		}
		defer f.Close()
		input = f
	}

	r := round.New(round.ClassifierFunc(handrank.New))

	var hands []*round.Hand
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		hand, err := r.ParseHand(line)
		if err != nil {
			logrus.WithError(err).WithField("line", line).Fatal("could not parse hand")
		}

		hands = append(hands, hand)
	}

	if err := scanner.Err(); err != nil {
		logrus.WithError(err).Fatal("could not read input")
	}

	if len(hands) == 0 {
		logrus.Fatal("no hands were submitted")
	}

	ranked, err := r.RankHands(hands)
	if err != nil {
		logrus.WithError(err).Fatal("could not rank hands")
	}

	for _, hand := range ranked {
		cards := make([]string, len(hand.Cards))
		for i, card := range hand.Cards {
			cards[i] = card.String()
		}

		fmt.Printf("%d. player %d: %s (%s)\n", hand.Standing, hand.OwnerID, hand.Rank, strings.Join(cards, " "))
	}
}
