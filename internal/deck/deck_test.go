package deck

import (
	"encoding/json"
	"testing"

	"github.com/lox/cardbench/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHasAllCards(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	require.Equal(t, 52, d.Len())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	a := New(randutil.New(42)).Cards()
	b := New(randutil.New(42)).Cards()
	c := New(randutil.New(43)).Cards()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDealWithoutReplacement(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(7))
	first, err := d.Deal(10)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, 42, d.Len())

	rest := d.DealAll()
	assert.Len(t, rest, 42)
	assert.Equal(t, 0, d.Len())

	seen := make(map[Card]bool)
	for _, c := range append(first, rest...) {
		assert.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
}

func TestDealInsufficientCards(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("As Ks"), nil)
	_, err := d.Deal(3)
	require.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 2, d.Len(), "failed deal must not consume cards")

	_, err = d.Deal(-1)
	require.Error(t, err)
}

func TestFromCardsDealsFromTheEnd(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("2c 3c 4c"), nil)
	got, err := d.Deal(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("4c 3c"), got)
}

func TestDealWithReplacementKeepsCount(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(3))
	for range 20 {
		cards := d.DealWithReplacement(5)
		assert.Len(t, cards, 5)
	}
	assert.Equal(t, 52, d.Len())
}

func TestCardJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(MustParseCards("As Th"))
	require.NoError(t, err)
	assert.JSONEq(t, `["As","Th"]`, string(b))

	var back []Card
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, MustParseCards("As Th"), back)
}

func TestDealWithReplacementWithoutGenerator(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("2c 3c"), nil)
	cards := d.DealWithReplacement(10)
	assert.Len(t, cards, 10)
	assert.Equal(t, 2, d.Len())
}
