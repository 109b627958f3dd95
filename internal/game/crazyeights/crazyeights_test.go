package crazyeights

import (
	"testing"

	"github.com/lox/cardbench/internal/deck"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// table builds a two-agent game in a known position with agent 0 to act
func table(t *testing.T, hand0, hand1, stock, top string) *Game {
	t.Helper()
	g, err := New(game.Seats(2), randutil.New(7), nil)
	require.NoError(t, err)
	g.hands = map[game.AgentID][]deck.Card{
		0: deck.MustParseCards(hand0),
		1: deck.MustParseCards(hand1),
	}
	g.stock = deck.MustParseCards(stock)
	g.discard = deck.MustParseCards(top)
	starter := g.discard[len(g.discard)-1]
	g.suit, g.rank = starter.Suit, starter.Rank
	g.SetCurrent(0)
	return g
}

func TestInitDealsAndAvoidsEightStarter(t *testing.T) {
	t.Parallel()
	for seed := range int64(100) {
		g, err := New(game.Seats(2), randutil.New(seed), nil)
		require.NoError(t, err)
		require.NoError(t, g.Init())

		assert.Len(t, g.hands[0], 5)
		assert.Len(t, g.hands[1], 5)
		assert.NotEqual(t, deck.Eight, g.discard[0].Rank)
		assert.Equal(t, 52, g.cardCount())
		assert.Contains(t, []game.AgentID{0, 1}, g.CurrentAgent())
	}
}

func TestLegalActions(t *testing.T) {
	t.Parallel()
	g := table(t, "8h 5c 9d 2s", "3c 4c", "KsQs", "9c")

	legal := g.LegalActions(0)
	assert.ElementsMatch(t, []game.Action{
		PlayEight(deck.MustParseCards("8h")[0], deck.Clubs),
		PlayEight(deck.MustParseCards("8h")[0], deck.Diamonds),
		PlayEight(deck.MustParseCards("8h")[0], deck.Hearts),
		PlayEight(deck.MustParseCards("8h")[0], deck.Spades),
		PlayCard(deck.MustParseCards("5c")[0]),
		PlayCard(deck.MustParseCards("9d")[0]),
		Action{Kind: Draw},
	}, legal)
	assert.Empty(t, g.LegalActions(1), "only the current agent may act")

	for _, a := range legal {
		assert.True(t, g.Validate(0, a), a.String())
	}
	assert.False(t, g.Validate(0, PlayCard(deck.MustParseCards("2s")[0])))
	assert.False(t, g.Validate(0, Action{Kind: Pass}))
}

func TestPassOnlyWhenStuckWithEmptyStock(t *testing.T) {
	t.Parallel()
	g := table(t, "2s 3s", "9c", "", "9h")

	assert.Equal(t, []game.Action{Action{Kind: Pass}}, g.LegalActions(0))

	next, err := g.Step(Action{Kind: Pass})
	require.NoError(t, err)
	assert.Equal(t, game.AgentID(1), next)
	assert.False(t, g.Done(), "agent 1 can still play")
}

func TestStalemateAfterPass(t *testing.T) {
	t.Parallel()
	g := table(t, "2s 3s", "4s", "", "9h")

	next, err := g.Step(Action{Kind: Pass})
	require.NoError(t, err)
	assert.Equal(t, game.NoAgent, next)
	assert.True(t, g.Done())
	assert.Equal(t, "Stalemate reached - counting cards for result", g.Events().Last())

	scores, err := g.Scores()
	require.NoError(t, err)
	assert.Equal(t, map[game.AgentID]float64{0: 0, 1: 1}, scores)
}

func TestEightDeclaresSuit(t *testing.T) {
	t.Parallel()
	g := table(t, "8h 5c", "3c 4s", "Ks", "9c")

	eight := PlayEight(deck.MustParseCards("8h")[0], deck.Spades)
	assert.Equal(t, "Play 8h declaring spades", eight.String())
	_, err := g.Step(eight)
	require.NoError(t, err)

	assert.Equal(t, deck.Spades, g.suit)
	assert.Equal(t, []game.Action{
		PlayCard(deck.MustParseCards("4s")[0]),
		Action{Kind: Draw},
	}, g.LegalActions(1))
}

func TestDrawEndsTurn(t *testing.T) {
	t.Parallel()
	g := table(t, "2s", "3c", "KsQd", "9h")

	next, err := g.Step(Action{Kind: Draw})
	require.NoError(t, err)
	assert.Equal(t, game.AgentID(1), next)
	assert.Len(t, g.hands[0], 2)
	assert.Len(t, g.stock, 1)
}

func TestLastCardWins(t *testing.T) {
	t.Parallel()
	g := table(t, "5h", "3c 4c", "Ks", "9h")

	next, err := g.Step(PlayCard(deck.MustParseCards("5h")[0]))
	require.NoError(t, err)
	assert.Equal(t, game.NoAgent, next)

	scores, err := g.Scores()
	require.NoError(t, err)
	assert.Equal(t, map[game.AgentID]float64{0: 1, 1: 0}, scores)

	_, err = g.Step(Action{Kind: Draw})
	assert.ErrorIs(t, err, game.ErrGameOver)
}

func TestIllegalActionRejected(t *testing.T) {
	t.Parallel()
	g := table(t, "2s", "3c", "Ks", "9h")

	_, err := g.Step(PlayCard(deck.MustParseCards("2s")[0]))
	assert.ErrorIs(t, err, game.ErrIllegalAction)
	_, err = g.Scores()
	assert.ErrorIs(t, err, game.ErrNotDone)
}

func TestViewHidesOpponentHand(t *testing.T) {
	t.Parallel()
	g := table(t, "2s 5h", "3c 4c 7d", "Ks", "9h")

	v := g.StateView(0).(View)
	assert.Equal(t, deck.MustParseCards("2s 5h"), v.Hand)
	assert.Equal(t, map[game.AgentID]int{1: 3}, v.OpponentHands)
	assert.Equal(t, "hearts", v.CurrentSuit)
	assert.NotContains(t, v.String(), "3c")
}

func TestRandomPlayConservesCards(t *testing.T) {
	t.Parallel()
	for seed := range int64(50) {
		rng := randutil.New(seed)
		g, err := New(game.Seats(2), rng, nil)
		require.NoError(t, err)
		require.NoError(t, g.Init())

		for turns := 0; !g.Done() && turns < 500; turns++ {
			legal := g.LegalActions(g.CurrentAgent())
			require.NotEmpty(t, legal)
			_, err := g.Step(legal[rng.IntN(len(legal))])
			require.NoError(t, err)
			require.Equal(t, 52, g.cardCount())
		}
	}
}

func TestRejectsAgentCounts(t *testing.T) {
	t.Parallel()
	_, err := New(game.Seats(1), randutil.New(1), nil)
	assert.ErrorIs(t, err, game.ErrAgentCount)
	_, err = New(game.Seats(6), randutil.New(1), nil)
	assert.ErrorIs(t, err, game.ErrAgentCount)

	g, err := New(game.Seats(4), randutil.New(1), nil)
	require.NoError(t, err)
	require.NoError(t, g.Init())
	assert.Equal(t, 52, g.cardCount())
}

