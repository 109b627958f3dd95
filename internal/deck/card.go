package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in canonical order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

const suitChars = "cdhs"

// String returns the single-letter representation of a suit ("c", "d", "h", "s")
func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Name returns the full suit name
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from Two to Ace
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

const rankChars = "23456789TJQKA"

// String returns the single-character representation of a rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// MarshalText encodes a rank as its single character
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the form produced by MarshalText
func (r *Rank) UnmarshalText(b []byte) error {
	parsed, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// IsFace returns true for Jack, Queen and King
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// Card represents a playing card. Cards are values and compare with ==.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "As", "Th")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// MarshalText encodes a card in its short form so hands render compactly in JSON
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the short form produced by MarshalText
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseRank parses a single rank character ("2".."9", "T", "J", "Q", "K", "A")
func ParseRank(s string) (Rank, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid rank: %q", s)
	}
	i := strings.IndexByte(rankChars, strings.ToUpper(s)[0])
	if i < 0 {
		return 0, fmt.Errorf("invalid rank: %q", s)
	}
	return Two + Rank(i), nil
}

// ParseSuit parses a single suit character ("c", "d", "h", "s")
func ParseSuit(s string) (Suit, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
	i := strings.IndexByte(suitChars, strings.ToLower(s)[0])
	if i < 0 {
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
	return Suit(i), nil
}

// ParseCard parses a string like "As" or "th" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	rank, err := ParseRank(s[:1])
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(s[1:])
	if err != nil {
		return Card{}, err
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a whitespace-separated or concatenated list of cards,
// e.g. "As Kd 7c" or "AsKd7c"
func ParseCards(s string) ([]Card, error) {
	compact := strings.Join(strings.Fields(s), "")
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("invalid card list: %q", s)
	}
	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		c, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed inputs; it panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards renders cards as a bracketed, space-separated list
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
