package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
)

// ErrInsufficientCards is returned when a deal asks for more cards than remain
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck represents an ordered pile of playing cards. The top of the deck is the
// end of the slice, so dealing is a cheap truncation.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// standardCards returns all 52 cards in suit-major order
func standardCards() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// New creates a standard 52-card deck shuffled with rng
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: standardCards(), rng: rng}
	d.Shuffle()
	return d
}

// FromCards builds a deck from an explicit card order; the last card is dealt first
func FromCards(cards []Card, rng *rand.Rand) *Deck {
	return &Deck{cards: slices.Clone(cards), rng: rng}
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns n cards from the top of the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("deal %d cards: negative count", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards with %d remaining: %w", n, len(d.cards), ErrInsufficientCards)
	}
	dealt := make([]Card, n)
	for i := range n {
		dealt[i] = d.cards[len(d.cards)-1-i]
	}
	d.cards = d.cards[:len(d.cards)-n]
	return dealt, nil
}

// DealAll removes and returns every remaining card
func (d *Deck) DealAll() []Card {
	cards, _ := d.Deal(len(d.cards))
	return cards
}

// DealWithReplacement samples n cards uniformly from a full 52-card deck,
// modelling an infinite shoe. The remaining count never changes. A deck
// built without a generator samples from the global source.
func (d *Deck) DealWithReplacement(n int) []Card {
	intN := rand.IntN
	if d.rng != nil {
		intN = d.rng.IntN
	}
	all := standardCards()
	dealt := make([]Card, n)
	for i := range dealt {
		dealt[i] = all[intN(len(all))]
	}
	return dealt
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}
