// Package gofish implements two-player Go Fish. Players ask an opponent for
// a rank they hold; four of a kind is laid down as a book and the game ends
// when all thirteen books are made.
package gofish

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
const Name = "go_fish"

const totalBooks = 13

// ActionKind enumerates Go Fish moves
type ActionKind int

const (
	Ask ActionKind = iota
	Pass
)

// Action asks Target for every card of Rank, or passes with an empty hand
type Action struct {
	Kind   ActionKind
	Rank   deck.Rank
	Target game.AgentID
}

func (a Action) String() string {
	if a.Kind == Pass {
		return "Pass"
	}
	return fmt.Sprintf("Rank: %s, Target: %d", a.Rank, a.Target)
}

// dealSize is the number of cards each player starts with
func dealSize(agents int) int {
	if agents <= 3 {
		return 7
	}
	return 5
}

// Game is a Go Fish match
type Game struct {
	game.Base
	rng    *rand.Rand
	logger *log.Logger

	hands map[game.AgentID][]deck.Card
	books map[game.AgentID][]deck.Rank
	stock []deck.Card
}

var _ game.Game = (*Game)(nil)

// New creates a Go Fish game for exactly two agents
func New(agents []game.AgentID, rng *rand.Rand, logger *log.Logger) (*Game, error) {
	if len(agents) != 2 {
		return nil, fmt.Errorf("%s needs exactly two agents, got %d: %w", Name, len(agents), game.ErrAgentCount)
	}
	logger = game.DiscardLogger(logger)
	return &Game{
		Base:   game.NewBase(Name, agents, eventlog.New(logger)),
		rng:    rng,
		logger: logger,
	}, nil
}

// Init deals the hands and picks a random first player
func (g *Game) Init() error {
	d := deck.New(g.rng)
	n := dealSize(g.NumAgents())
	g.hands = make(map[game.AgentID][]deck.Card, g.NumAgents())
	g.books = make(map[game.AgentID][]deck.Rank, g.NumAgents())
	for _, id := range g.Agents() {
		hand, err := d.Deal(n)
		if err != nil {
			return fmt.Errorf("deal to agent %d: %w", id, err)
		}
		g.hands[id] = hand
		g.books[id] = []deck.Rank{}
	}
	g.stock = d.DealAll()
	slices.Reverse(g.stock)

	agents := g.Agents()
	g.SetCurrent(agents[g.rng.IntN(len(agents))])
	g.logger.Debug("Go fish initialized", "agent", g.CurrentAgent(), "stock", len(g.stock))
	return nil
}

func (g *Game) draw(id game.AgentID) bool {
	if len(g.stock) == 0 {
		return false
	}
	g.hands[id] = append(g.hands[id], g.stock[len(g.stock)-1])
	g.stock = g.stock[:len(g.stock)-1]
	return true
}

// Step applies an ask or pass. The turn passes on after every move.
func (g *Game) Step(a game.Action) (game.AgentID, error) {
	id := g.CurrentAgent()
	if err := g.CheckStep(g.LegalActions(id), a); err != nil {
		return game.NoAgent, err
	}
	action := a.(Action)
	g.Events().Pushf("[Agent %d] %s", id, action)

	switch action.Kind {
	case Pass:
		g.draw(id)

	case Ask:
		target := g.hands[action.Target]
		caught := slices.DeleteFunc(slices.Clone(target), func(c deck.Card) bool {
			return c.Rank != action.Rank
		})
		if len(caught) == 0 {
			g.Events().Pushf("[Agent %d] Gone fishing", id)
			g.draw(id)
		} else {
			g.hands[action.Target] = slices.DeleteFunc(target, func(c deck.Card) bool {
				return c.Rank == action.Rank
			})
			g.hands[id] = append(g.hands[id], caught...)
			g.Events().Pushf("[Agent %d] Caught %d cards", id, len(caught))
		}
		g.collectBooks(id)
	}

	if g.bookCount() == totalBooks {
		g.Events().Push("All books made")
		g.Finish()
		return g.Next(), nil
	}
	g.Advance()
	return g.Next(), nil
}

// collectBooks lays down every four of a kind in id's hand
func (g *Game) collectBooks(id game.AgentID) {
	counts := make(map[deck.Rank]int)
	for _, c := range g.hands[id] {
		counts[c.Rank]++
	}
	for _, r := range deck.Ranks {
		if counts[r] < 4 {
			continue
		}
		g.books[id] = append(g.books[id], r)
		g.hands[id] = slices.DeleteFunc(g.hands[id], func(c deck.Card) bool {
			return c.Rank == r
		})
		g.Events().Pushf("[Agent %d] Made a book of %s", id, r)
	}
}

func (g *Game) bookCount() int {
	n := 0
	for _, b := range g.books {
		n += len(b)
	}
	return n
}

// LegalActions returns an ask for every rank held at every opponent, or a
// single Pass when the hand is empty.
func (g *Game) LegalActions(id game.AgentID) []game.Action {
	if !g.IsTurn(id) {
		return nil
	}
	var actions []game.Action
	seen := make(map[deck.Rank]bool)
	for _, c := range g.hands[id] {
		if seen[c.Rank] {
			continue
		}
		seen[c.Rank] = true
		for _, target := range g.Opponents(id) {
			actions = append(actions, Action{Kind: Ask, Rank: c.Rank, Target: target})
		}
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

// Scores awards the game to whoever made more books
func (g *Game) Scores() (map[game.AgentID]float64, error) {
	if !g.Done() {
		return nil, game.ErrNotDone
	}
	agents := g.Agents()
	b0, b1 := len(g.books[agents[0]]), len(g.books[agents[1]])
	switch {
	case b0 > b1:
		return game.WinnerScores(agents, agents[0]), nil
	case b1 > b0:
		return game.WinnerScores(agents, agents[1]), nil
	default:
		return game.DrawScores(agents), nil
	}
}

// View is one player's view of the table
type View struct {
	Hand             []deck.Card `json:"hand"`
	Books            []deck.Rank `json:"books"`
	OpponentBooks    []deck.Rank `json:"opponent_books"`
	OpponentHandSize int         `json:"opponent_hand_size"`
	StockSize        int         `json:"stock_size"`
}

func (v View) String() string {
	b, _ := json.Marshal(v)
	return string(b)
}

// StateView projects the table for id
func (g *Game) StateView(id game.AgentID) game.View {
	v := View{
		Hand:          slices.Clone(g.hands[id]),
		Books:         slices.Clone(g.books[id]),
		OpponentBooks: []deck.Rank{},
		StockSize:     len(g.stock),
	}
	for _, other := range g.Opponents(id) {
		v.OpponentBooks = append(v.OpponentBooks, g.books[other]...)
		v.OpponentHandSize += len(g.hands[other])
	}
	return v
}

// cardCount totals every card in hands and stock plus four per book
func (g *Game) cardCount() int {
	n := len(g.stock) + 4*g.bookCount()
	for _, hand := range g.hands {
		n += len(hand)
	}
	return n
}
