package mux

import (
	"net/http"
	"net/http/httptest"
	"os"
	"showdown-server/internal/config"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

type testHand struct {
	OwnerID  int `json:"ownerId"`
	Standing int `json:"standing"`
	Rank     *struct {
		Category string `json:"category"`
		Strength int    `json:"strength"`
	} `json:"rank"`
	Cards []struct {
		Rank int    `json:"rank"`
		Suit string `json:"suit"`
	} `json:"cards"`
}

type testShowdown struct {
	Hands []testHand `json:"hands"`
}

func createRound(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	var resp createRoundResponse
	assertPost(t, ts, "/round", nil, &resp, 201)
	assert.NotEmpty(t, resp.ID)
	return resp.ID
}

func postHand(t *testing.T, ts *httptest.Server, id, line string, statusCode int) {
	t.Helper()
	assertPost(t, ts, "/round/"+id+"/hand", postHandPayload{Line: line}, nil, statusCode)
}

func TestRoundLifecycle(t *testing.T) {
	a := assert.New(t)

	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)

	var hand testHand
	assertPost(t, ts, "/round/"+id+"/hand", postHandPayload{Line: "1 2H 3C 4D 5S 6H"}, &hand, 201)
	a.Equal(1, hand.OwnerID)
	a.Equal(5, len(hand.Cards))
	a.Nil(hand.Rank)
	a.Equal(0, hand.Standing)

	postHand(t, ts, id, "2 2S 3D 4H 5C 6D", 201)
	postHand(t, ts, id, "3 KH 9C 7D 5H 2C", 201)

	var result testShowdown
	assertPost(t, ts, "/round/"+id+"/showdown", nil, &result, 200)

	a.Equal(3, len(result.Hands))
	a.Equal([]int{1, 2, 3}, []int{result.Hands[0].OwnerID, result.Hands[1].OwnerID, result.Hands[2].OwnerID})
	a.Equal([]int{1, 1, 2}, []int{result.Hands[0].Standing, result.Hands[1].Standing, result.Hands[2].Standing})
	a.Equal("Straight", result.Hands[0].Rank.Category)
	a.Equal("Straight", result.Hands[1].Rank.Category)
	a.Equal("High card", result.Hands[2].Rank.Category)

	// a second showdown yields the same standings
	var again testShowdown
	assertPost(t, ts, "/round/"+id+"/showdown", nil, &again, 200)
	a.Equal(result, again)
}

func TestRoundValidationErrors(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)

	postHand(t, ts, id, "1 AH 2C 3D 4S 5H", 201)

	// duplicate owner
	postHand(t, ts, id, "1 6H 7C 8D 9S 10H", 400)

	// duplicate card
	postHand(t, ts, id, "2 AH 7C 8D 9S 10H", 400)

	// invalid card token
	postHand(t, ts, id, "3 XH 7C 8D 9S 10H", 400)

	// bad token count
	postHand(t, ts, id, "4 7C 8D 9S 10H", 400)

	// empty line
	postHand(t, ts, id, "", 400)
}

func TestRoundShowdown_noHands(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)
	assertPost(t, ts, "/round/"+id+"/showdown", nil, nil, 400)
}

func TestRoundReset(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)

	postHand(t, ts, id, "1 AH 2C 3D 4S 5H", 201)
	postHand(t, ts, id, "1 AH 2C 3D 4S 5H", 400)

	var resp statusResponse
	assertPost(t, ts, "/round/"+id+"/reset", nil, &resp, 200)
	assert.Equal(t, "OK", resp.Status)

	// previously used owner and cards are accepted again
	postHand(t, ts, id, "1 AH 2C 3D 4S 5H", 201)
}

func TestRoundNotFound(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	assertPost(t, ts, "/round/9a11a6f2-33a7-4b9b-85b4-93b79d0ec489/hand", postHandPayload{Line: "1 AH 2C 3D 4S 5H"}, nil, 404)
}

func TestRoundHand_maxHands(t *testing.T) {
	clear1 := setEnv(t, "SD_MAX_HANDS_PER_ROUND", "2")
	assert.NoError(t, config.Load())
	defer func() {
		clear1()
		_ = config.Load()
	}()

	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)
	postHand(t, ts, id, "1 AH 2C 3D 4S 5H", 201)
	postHand(t, ts, id, "2 6H 7C 8D 9S 10H", 201)
	postHand(t, ts, id, "3 JH QC KD 6S 7H", 400)
}

func TestRoundHand_badContentType(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/round/"+id+"/hand", strings.NewReader(`{"line":"1 AH 2C 3D 4S 5H"}`))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	assertDo(t, req, nil, 415)
}

func TestRoundWS(t *testing.T) {
	a := assert.New(t)

	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	id := createRound(t, ts)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/round/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	a.NoError(err)
	defer conn.Close()

	postHand(t, ts, id, "1 AH AS AD AC 2H", 201)
	postHand(t, ts, id, "2 KH KS KD KC 3H", 201)
	assertPost(t, ts, "/round/"+id+"/showdown", nil, nil, 200)

	var result testShowdown
	a.NoError(conn.ReadJSON(&result))
	a.Equal(2, len(result.Hands))
	a.Equal(1, result.Hands[0].OwnerID)
	a.Equal(1, result.Hands[0].Standing)
	a.Equal("Four of a kind", result.Hands[0].Rank.Category)
	a.Equal(2, result.Hands[1].Standing)
}

func setEnv(t *testing.T, key, val string) func() {
	t.Helper()

	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
