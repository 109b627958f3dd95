package ginrummy

import (
	"math/bits"
	"slices"

	"github.com/lox/cardbench/internal/deck"
)

// Key is an order-independent encoding of a set of cards. Bit suit*13+rank is
// set for each card held, with ranks counted ace-low (ace 0, king 12), so a
// run is a block of adjacent bits inside one suit's 13-bit lane.
type Key uint64

const (
	lane     = 13
	laneMask = 1<<lane - 1
)

func bit(c deck.Card) Key {
	return 1 << (uint(c.Suit)*lane + uint(lowRank(c.Rank)))
}

// lowRank maps Ace to 0 and Two..King to 1..12
func lowRank(r deck.Rank) int {
	if r == deck.Ace {
		return 0
	}
	return int(r) - 1
}

func cardAt(i int) deck.Card {
	suit := deck.Suit(i / lane)
	r := i % lane
	if r == 0 {
		return deck.NewCard(deck.Ace, suit)
	}
	return deck.NewCard(deck.Rank(r+1), suit)
}

// KeyOf encodes cards as a Key
func KeyOf(cards []deck.Card) Key {
	var k Key
	for _, c := range cards {
		k |= bit(c)
	}
	return k
}

// Cards decodes k in suit-then-rank order
func (k Key) Cards() []deck.Card {
	cards := make([]deck.Card, 0, bits.OnesCount64(uint64(k)))
	for rest := uint64(k); rest != 0; rest &= rest - 1 {
		cards = append(cards, cardAt(bits.TrailingZeros64(rest)))
	}
	return cards
}

// Len returns the number of cards in k
func (k Key) Len() int {
	return bits.OnesCount64(uint64(k))
}

// CardValue is the deadwood value of a card: ace 1, faces 10, numerals face value
func CardValue(c deck.Card) int {
	switch {
	case c.Rank == deck.Ace:
		return 1
	case c.Rank == deck.Ten || c.Rank.IsFace():
		return 10
	default:
		return int(c.Rank)
	}
}

// Value sums the deadwood value of cards
func Value(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += CardValue(c)
	}
	return total
}

func (k Key) value() int {
	total := 0
	for rest := uint64(k); rest != 0; rest &= rest - 1 {
		total += CardValue(cardAt(bits.TrailingZeros64(rest)))
	}
	return total
}

// melds lists every meld contained in k: each three or four of a kind (a four
// also contributes its four three-card subsets) and every window of three or
// more consecutive ranks within a suit. Aces only sit below the two.
func (k Key) melds() []Key {
	var out []Key

	for r := range lane {
		var set Key
		for s := range len(deck.Suits) {
			if b := Key(1) << (s*lane + r); k&b != 0 {
				set |= b
			}
		}
		switch set.Len() {
		case 3:
			out = append(out, set)
		case 4:
			out = append(out, set)
			for rest := uint64(set); rest != 0; rest &= rest - 1 {
				out = append(out, set&^Key(rest&-rest))
			}
		}
	}

	for s := range len(deck.Suits) {
		suited := (k >> (s * lane)) & laneMask
		for start := 0; start < lane; start++ {
			var run Key
			for r := start; r < lane && suited&(1<<r) != 0; r++ {
				run |= 1 << r
				if r-start >= 2 {
					out = append(out, run<<(s*lane))
				}
			}
		}
	}
	return out
}

// best is the memoized answer for one sub-hand: the minimum deadwood and the
// first meld of a partition that reaches it (zero when no meld helps).
type best struct {
	deadwood int
	meld     Key
}

// Solver finds the meld partition of a hand that minimizes deadwood. It
// caches every sub-hand it has solved, so one Solver should live as long as
// the game whose hands it scores. A Solver is not safe for concurrent use.
type Solver struct {
	memo map[Key]best
}

// NewSolver returns a Solver with an empty cache
func NewSolver() *Solver {
	return &Solver{memo: make(map[Key]best)}
}

func (s *Solver) solve(k Key) best {
	if k == 0 {
		return best{}
	}
	if b, ok := s.memo[k]; ok {
		return b
	}
	b := best{deadwood: k.value()}
	for _, m := range k.melds() {
		if d := s.solve(k &^ m).deadwood; d < b.deadwood {
			b = best{deadwood: d, meld: m}
		}
	}
	s.memo[k] = b
	return b
}

// Deadwood returns the minimum total value of cards left out of melds
func (s *Solver) Deadwood(hand []deck.Card) int {
	return s.solve(KeyOf(hand)).deadwood
}

// Melds returns an optimal set of disjoint melds and the cards left over
func (s *Solver) Melds(hand []deck.Card) (melds [][]deck.Card, unmatched []deck.Card) {
	k := KeyOf(hand)
	for {
		b := s.solve(k)
		if b.meld == 0 {
			break
		}
		melds = append(melds, b.meld.Cards())
		k &^= b.meld
	}
	unmatched = slices.DeleteFunc(slices.Clone(hand), func(c deck.Card) bool {
		return k&bit(c) == 0
	})
	if unmatched == nil {
		unmatched = []deck.Card{}
	}
	return melds, unmatched
}

// CanGin reports whether some discard leaves hand with no deadwood
func (s *Solver) CanGin(hand []deck.Card) bool {
	gin, _ := s.endings(hand)
	return len(gin) > 0
}

// CanKnock reports whether some discard leaves hand with deadwood in (0, 10]
func (s *Solver) CanKnock(hand []deck.Card) bool {
	_, knock := s.endings(hand)
	return len(knock) > 0
}

// endings splits the discards from an eleven-card hand into those that go
// gin and those that allow a knock. Other hand sizes have neither.
func (s *Solver) endings(hand []deck.Card) (gin, knock []deck.Card) {
	if len(hand) != handSize+1 {
		return nil, nil
	}
	k := KeyOf(hand)
	for _, c := range hand {
		switch d := s.solve(k &^ bit(c)).deadwood; {
		case d == 0:
			gin = append(gin, c)
		case d <= knockLimit:
			knock = append(knock, c)
		}
	}
	return gin, knock
}

// IsMeld reports whether cards form a single valid set or run
func IsMeld(cards []deck.Card) bool {
	k := KeyOf(cards)
	if k.Len() != len(cards) || len(cards) < 3 {
		return false
	}
	return slices.Contains(k.melds(), k)
}
