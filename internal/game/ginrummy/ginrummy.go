// Package ginrummy implements two-player Gin Rummy with the upcard offer,
// knocking at ten or less, gin and undercuts. Layoffs are not played.
package ginrummy

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
const Name = "gin_rummy"

const (
	handSize   = 10
	knockLimit = 10
	// minStock is the stock size at or below which the hand is dead
	minStock = 2
)

// ActionKind enumerates Gin Rummy moves
type ActionKind int

const (
	DrawFromStock ActionKind = iota
	DrawFromDiscard
	TakeUpcard
	PassUpcard
	Discard
	Knock
	Gin
)

var kindNames = [...]string{
	DrawFromStock:   "DRAW_FROM_STOCK",
	DrawFromDiscard: "DRAW_FROM_DISCARD",
	TakeUpcard:      "TAKE_UPCARD",
	PassUpcard:      "PASS_UPCARD",
	Discard:         "DISCARD",
	Knock:           "KNOCK",
	Gin:             "GIN",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Action is a Gin Rummy move. Card is set for DISCARD, KNOCK and GIN, which
// all discard that card.
type Action struct {
	Kind ActionKind
	Card deck.Card
}

func (a Action) String() string {
	switch a.Kind {
	case Discard, Knock, Gin:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Card)
	default:
		return a.Kind.String()
	}
}

// Phase is the stage of the current turn
type Phase int

const (
	UpcardDraw Phase = iota
	UpcardDiscard
	Draw
	DiscardPhase
)

func (p Phase) String() string {
	switch p {
	case UpcardDraw:
		return "upcard_draw"
	case UpcardDiscard:
		return "upcard_discard"
	case Draw:
		return "draw"
	default:
		return "discard"
	}
}

// Game is a single hand of Gin Rummy
type Game struct {
	game.Base
	rng    *rand.Rand
	logger *log.Logger
	solver *Solver

	hands   map[game.AgentID][]deck.Card
	stock   []deck.Card
	discard []deck.Card
	phase   Phase
	passed  map[game.AgentID]bool

	winner    game.AgentID
	hasWinner bool
}

var _ game.Game = (*Game)(nil)

// New creates a Gin Rummy hand for exactly two agents
func New(agents []game.AgentID, rng *rand.Rand, logger *log.Logger) (*Game, error) {
	if len(agents) != 2 {
		return nil, fmt.Errorf("%s needs exactly two agents, got %d: %w", Name, len(agents), game.ErrAgentCount)
	}
	logger = game.DiscardLogger(logger)
	return &Game{
		Base:   game.NewBase(Name, agents, eventlog.New(logger)),
		rng:    rng,
		logger: logger,
		solver: NewSolver(),
		winner: game.NoAgent,
	}, nil
}

// Init deals ten cards each and turns the upcard
func (g *Game) Init() error {
	d := deck.New(g.rng)
	g.hands = make(map[game.AgentID][]deck.Card, 2)
	for _, id := range g.Agents() {
		hand, err := d.Deal(handSize)
		if err != nil {
			return fmt.Errorf("deal to agent %d: %w", id, err)
		}
		g.hands[id] = hand
	}
	g.stock = d.DealAll()
	slices.Reverse(g.stock)
	g.discard = []deck.Card{g.popStock()}
	g.phase = UpcardDraw
	g.passed = make(map[game.AgentID]bool, 2)

	agents := g.Agents()
	g.SetCurrent(agents[g.rng.IntN(len(agents))])

	g.logger.Debug("Gin rummy initialized", "upcard", g.topDiscard(), "agent", g.CurrentAgent())
	g.Events().Pushf("Upcard is %s", g.topDiscard())
	return nil
}

func (g *Game) popStock() deck.Card {
	c := g.stock[len(g.stock)-1]
	g.stock = g.stock[:len(g.stock)-1]
	return c
}

func (g *Game) popDiscard() deck.Card {
	c := g.discard[len(g.discard)-1]
	g.discard = g.discard[:len(g.discard)-1]
	return c
}

func (g *Game) topDiscard() *deck.Card {
	if len(g.discard) == 0 {
		return nil
	}
	c := g.discard[len(g.discard)-1]
	return &c
}

// Step applies one move for the current agent
func (g *Game) Step(a game.Action) (game.AgentID, error) {
	id := g.CurrentAgent()
	if err := g.CheckStep(g.LegalActions(id), a); err != nil {
		return game.NoAgent, err
	}
	action := a.(Action)
	g.Events().Pushf("[Agent %d] %s", id, action)

	switch action.Kind {
	case TakeUpcard:
		g.hands[id] = append(g.hands[id], g.popDiscard())
		g.phase = UpcardDiscard

	case PassUpcard:
		g.passed[id] = true
		g.Advance()
		if len(g.passed) == g.NumAgents() {
			g.phase = Draw
		}

	case DrawFromStock:
		g.hands[id] = append(g.hands[id], g.popStock())
		g.phase = DiscardPhase

	case DrawFromDiscard:
		g.hands[id] = append(g.hands[id], g.popDiscard())
		g.phase = DiscardPhase

	case Discard:
		g.discardCard(id, action.Card)
		if len(g.stock) <= minStock {
			g.endStockExhausted()
			break
		}
		g.phase = Draw
		g.Advance()

	case Knock:
		g.discardCard(id, action.Card)
		g.endKnock(id)

	case Gin:
		g.discardCard(id, action.Card)
		g.finishWith(id)
		g.Events().Pushf("Agent %d goes Gin!", id)
	}
	return g.Next(), nil
}

func (g *Game) discardCard(id game.AgentID, c deck.Card) {
	hand := g.hands[id]
	i := slices.Index(hand, c)
	g.hands[id] = slices.Delete(hand, i, i+1)
	g.discard = append(g.discard, c)
}

func (g *Game) finishWith(winner game.AgentID) {
	g.winner, g.hasWinner = winner, true
	g.Finish()
}

// endKnock compares deadwood; the knocker must be strictly lower or is undercut
func (g *Game) endKnock(knocker game.AgentID) {
	opponent := g.Opponents(knocker)[0]
	knockerPoints := g.solver.Deadwood(g.hands[knocker])
	opponentPoints := g.solver.Deadwood(g.hands[opponent])

	winner := opponent
	if knockerPoints < opponentPoints {
		winner = knocker
	}
	g.Events().Pushf("Agent %d knocks with %d points, Agent %d has %d points", knocker, knockerPoints, opponent, opponentPoints)
	if winner == opponent {
		g.Events().Pushf("Agent %d undercuts", opponent)
	}
	g.finishWith(winner)
}

func (g *Game) endStockExhausted() {
	agents := g.Agents()
	p0 := g.solver.Deadwood(g.hands[agents[0]])
	p1 := g.solver.Deadwood(g.hands[agents[1]])
	g.Events().Pushf("Stock empty. Agent %d has %d points, Agent %d has %d points.", agents[0], p0, agents[1], p1)

	switch {
	case p0 < p1:
		g.finishWith(agents[0])
	case p1 < p0:
		g.finishWith(agents[1])
	default:
		g.Events().Push("Game is a draw.")
		g.Finish()
	}
}

// LegalActions returns the moves for id in the current phase. In either
// discard phase every card may be discarded; when some discard reaches gin
// those GIN moves are offered, otherwise KNOCK moves for every discard
// leaving ten or fewer points.
func (g *Game) LegalActions(id game.AgentID) []game.Action {
	if !g.IsTurn(id) {
		return nil
	}
	var actions []game.Action
	switch g.phase {
	case UpcardDraw:
		if len(g.discard) > 0 {
			actions = append(actions, Action{Kind: TakeUpcard})
		}
		actions = append(actions, Action{Kind: PassUpcard})

	case Draw:
		if len(g.stock) > minStock {
			actions = append(actions, Action{Kind: DrawFromStock})
		}
		if len(g.discard) > 0 {
			actions = append(actions, Action{Kind: DrawFromDiscard})
		}

	case UpcardDiscard, DiscardPhase:
		hand := g.hands[id]
		for _, c := range hand {
			actions = append(actions, Action{Kind: Discard, Card: c})
		}
		gin, knock := g.solver.endings(hand)
		if len(gin) > 0 {
			for _, c := range gin {
				actions = append(actions, Action{Kind: Gin, Card: c})
			}
		} else {
			for _, c := range knock {
				actions = append(actions, Action{Kind: Knock, Card: c})
			}
		}
	}
	return actions
}

// Validate reports whether a is currently legal for id
func (g *Game) Validate(id game.AgentID, a game.Action) bool {
	return game.Contains(g.LegalActions(id), a)
}

// Scores gives the winner 1 and the loser 0, or 0.5 each for a dead hand
// with equal deadwood.
func (g *Game) Scores() (map[game.AgentID]float64, error) {
	if !g.Done() {
		return nil, game.ErrNotDone
	}
	if !g.hasWinner {
		return game.DrawScores(g.Agents()), nil
	}
	return game.WinnerScores(g.Agents(), g.winner), nil
}

// Winner returns the winning agent, or NoAgent for a draw or unfinished hand
func (g *Game) Winner() game.AgentID {
	if !g.hasWinner {
		return game.NoAgent
	}
	return g.winner
}

// View is one player's view of the hand
type View struct {
	Hand             []deck.Card   `json:"hand"`
	TopDiscard       *deck.Card    `json:"top_discard"`
	StockSize        int           `json:"stock_size"`
	Phase            string        `json:"phase"`
	BestMelds        [][]deck.Card `json:"best_melds"`
	Unmatched        []deck.Card   `json:"unmatched_cards"`
	Deadwood         int           `json:"deadwood"`
	OpponentHandSize int           `json:"opponent_hand_size"`
}

func (v View) String() string {
	b, _ := json.Marshal(v)
	return string(b)
}

// StateView projects the hand for id, including its optimal melds
func (g *Game) StateView(id game.AgentID) game.View {
	hand := slices.Clone(g.hands[id])
	melds, unmatched := g.solver.Melds(hand)
	if melds == nil {
		melds = [][]deck.Card{}
	}
	v := View{
		Hand:       hand,
		TopDiscard: g.topDiscard(),
		StockSize:  len(g.stock),
		Phase:      g.phase.String(),
		BestMelds:  melds,
		Unmatched:  unmatched,
		Deadwood:   Value(unmatched),
	}
	for _, other := range g.Opponents(id) {
		v.OpponentHandSize = len(g.hands[other])
	}
	return v
}

func (g *Game) cardCount() int {
	n := len(g.stock) + len(g.discard)
	for _, hand := range g.hands {
		n += len(hand)
	}
	return n
}
