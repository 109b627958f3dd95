// Package crazyeights implements Crazy Eights: match the top discard by suit
// or rank, eights are wild and name the next suit, first to empty their hand
// wins.
package crazyeights

import (
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/deck"
	"github.com/lox/cardbench/internal/eventlog"
	"github.com/lox/cardbench/internal/game"
)

// Name is the registry name of the game
const Name = "crazy_eights"

const (
	minAgents    = 2
	maxAgents    = 5
	cardsPerHand = 5
)

// ActionKind enumerates the kinds of move
type ActionKind int

const (
	Play ActionKind = iota
	Draw
	Pass
)

// Action is a Crazy Eights move. For Play, Suit is the suit in force after
// the card lands: the card's own suit, or the declared suit for an eight.
type Action struct {
	Kind ActionKind
	Card deck.Card
	Suit deck.Suit
}

// PlayCard plays a non-eight card
func PlayCard(c deck.Card) Action {
	return Action{Kind: Play, Card: c, Suit: c.Suit}
}

// PlayEight plays an eight and declares suit
func PlayEight(c deck.Card, suit deck.Suit) Action {
	return Action{Kind: Play, Card: c, Suit: suit}
}

func (a Action) String() string {
	switch a.Kind {
	case Play:
		if a.Card.Rank == deck.Eight {
			return fmt.Sprintf("Play %s declaring %s", a.Card, a.Suit.Name())
		}
		return "Play " + a.Card.String()
	case Draw:
		return "Draw"
	case Pass:
		return "Pass"
	default:
		return "No-op"
	}
}

// Game is a Crazy Eights match
type Game struct {
	game.Base
	rng    *rand.Rand
	logger *log.Logger

	hands   map[game.AgentID][]deck.Card
	stock   []deck.Card
	discard []deck.Card
	suit    deck.Suit
	rank    deck.Rank
}

var _ game.Game = (*Game)(nil)

// New creates a Crazy Eights game for two to five agents
func New(agents []game.AgentID, rng *rand.Rand, logger *log.Logger) (*Game, error) {
	if len(agents) < minAgents || len(agents) > maxAgents {
		return nil, fmt.Errorf("%s supports %d-%d agents, got %d: %w", Name, minAgents, maxAgents, len(agents), game.ErrAgentCount)
	}
	logger = game.DiscardLogger(logger)
	return &Game{
		Base:   game.NewBase(Name, agents, eventlog.New(logger)),
		rng:    rng,
		logger: logger,
	}, nil
}

// Init deals five cards each and turns a starter that is not an eight
func (g *Game) Init() error {
	d := deck.New(g.rng)
	g.hands = make(map[game.AgentID][]deck.Card, g.NumAgents())
	for _, id := range g.Agents() {
		hand, err := d.Deal(cardsPerHand)
		if err != nil {
			return fmt.Errorf("deal to agent %d: %w", id, err)
		}
		g.hands[id] = hand
	}
	g.stock = d.DealAll()
	slices.Reverse(g.stock) // top of the stock is the end of the slice

	starter := g.pop()
	for starter.Rank == deck.Eight {
		i := g.rng.IntN(len(g.stock) + 1)
		g.stock = slices.Insert(g.stock, i, starter)
		starter = g.pop()
	}
	g.discard = []deck.Card{starter}
	g.suit, g.rank = starter.Suit, starter.Rank

	agents := g.Agents()
	g.SetCurrent(agents[g.rng.IntN(len(agents))])

	g.logger.Debug("Crazy eights initialized", "starter", starter, "suit", g.suit.Name(), "agent", g.CurrentAgent())
	g.Events().Pushf("Starter card is %s", starter)
	return nil
}

func (g *Game) pop() deck.Card {
	c := g.stock[len(g.stock)-1]
	g.stock = g.stock[:len(g.stock)-1]
	return c
}

// Step applies a play, draw or pass for the current agent
func (g *Game) Step(a game.Action) (game.AgentID, error) {
	id := g.CurrentAgent()
	if err := g.CheckStep(g.LegalActions(id), a); err != nil {
		return game.NoAgent, err
	}
	action := a.(Action)
	g.Events().Pushf("[Agent %d] %s", id, action)

	switch action.Kind {
	case Draw:
		g.hands[id] = append(g.hands[id], g.pop())
		g.Advance()

	case Pass:
		g.Advance()
		if g.stalemate() {
			g.Events().Push("Stalemate reached - counting cards for result")
			g.Finish()
		}

	case Play:
		hand := g.hands[id]
		i := slices.Index(hand, action.Card)
		g.hands[id] = slices.Delete(hand, i, i+1)
		g.discard = append(g.discard, action.Card)
		g.suit, g.rank = action.Suit, action.Card.Rank

		if len(g.hands[id]) == 0 {
			g.Events().Pushf("Agent %d played their last card", id)
			g.Finish()
			break
		}
		g.Advance()
	}
	return g.Next(), nil
}

func (g *Game) playable(id game.AgentID) []deck.Card {
	var out []deck.Card
	for _, c := range g.hands[id] {
		if c.Rank == deck.Eight || c.Suit == g.suit || c.Rank == g.rank {
			out = append(out, c)
		}
	}
	return out
}

// stalemate reports an empty stock with nobody able to play
func (g *Game) stalemate() bool {
	if len(g.stock) > 0 {
		return false
	}
	for _, id := range g.Agents() {
		if len(g.playable(id)) > 0 {
			return false
		}
	}
	return true
}

// LegalActions returns every playable card (an eight once per suit), Draw
// while the stock lasts, and Pass only when nothing else is possible.
func (g *Game) LegalActions(id game.AgentID) []game.Action {
	if !g.IsTurn(id) {
		return nil
	}
	var actions []game.Action
	for _, c := range g.playable(id) {
		if c.Rank == deck.Eight {
			for _, s := range deck.Suits {
				actions = append(actions, PlayEight(c, s))
			}
			continue
		}
		actions = append(actions, PlayCard(c))
	}
	if len(g.stock) > 0 {
		actions = append(actions, Action{Kind: Draw})
	}
	if len(actions) == 0 {
		actions = append(actions, Action{Kind: Pass})
	}
	return actions
}

// Validate reports whether a is currently legal for id
func (g *Game) Validate(id game.AgentID, a game.Action) bool {
	return game.Contains(g.LegalActions(id), a)
}

// Scores awards the point to the agent holding the fewest cards; tied agents
// share it.
func (g *Game) Scores() (map[game.AgentID]float64, error) {
	if !g.Done() {
		return nil, game.ErrNotDone
	}
	fewest := -1
	for _, id := range g.Agents() {
		if n := len(g.hands[id]); fewest < 0 || n < fewest {
			fewest = n
		}
	}
	var winners []game.AgentID
	for _, id := range g.Agents() {
		if len(g.hands[id]) == fewest {
			winners = append(winners, id)
		}
	}
	scores := make(map[game.AgentID]float64, g.NumAgents())
	for _, id := range g.Agents() {
		scores[id] = 0
	}
	for _, id := range winners {
		scores[id] = 1 / float64(len(winners))
	}
	return scores, nil
}

// View is one agent's view of the table
type View struct {
	Hand          []deck.Card          `json:"hand"`
	TopDiscard    deck.Card            `json:"top_discard"`
	CurrentSuit   string               `json:"current_suit"`
	StockSize     int                  `json:"stock_size"`
	OpponentHands map[game.AgentID]int `json:"opponent_hand_sizes"`
}

func (v View) String() string {
	b, _ := json.Marshal(v)
	return string(b)
}

// StateView projects the table for id; other hands appear only as counts
func (g *Game) StateView(id game.AgentID) game.View {
	v := View{
		Hand:          slices.Clone(g.hands[id]),
		CurrentSuit:   g.suit.Name(),
		StockSize:     len(g.stock),
		OpponentHands: make(map[game.AgentID]int),
	}
	if len(g.discard) > 0 {
		v.TopDiscard = g.discard[len(g.discard)-1]
	}
	for _, other := range g.Opponents(id) {
		v.OpponentHands[other] = len(g.hands[other])
	}
	return v
}

// cardCount totals every card in hands, stock and discard pile
func (g *Game) cardCount() int {
	n := len(g.stock) + len(g.discard)
	for _, hand := range g.hands {
		n += len(hand)
	}
	return n
}
