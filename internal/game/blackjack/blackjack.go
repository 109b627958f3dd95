// Package blackjack implements single-player blackjack against a dealer who
// draws to 17, dealt from an infinite shoe.
package blackjack

import (
	"encoding/json"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/deck"
	"github.com/lox/cardbench/internal/eventlog"
	"github.com/lox/cardbench/internal/game"
)

// Name is the registry name of the game
const Name = "blackjack"

const (
	target      = 21
	dealerStand = 17
)

// ActionKind enumerates the player's moves
type ActionKind int

const (
	Hit ActionKind = iota
	Stand
)

// Action is a blackjack move
type Action struct {
	Kind ActionKind
}

func (a Action) String() string {
	switch a.Kind {
	case Hit:
		return "HIT"
	case Stand:
		return "STAND"
	default:
		return "UNKNOWN"
	}
}

// Phase is the stage of the hand
type Phase int

const (
	PlayerTurn Phase = iota
	DealerTurn
	Finished
)

func (p Phase) String() string {
	switch p {
	case PlayerTurn:
		return "player_turn"
	case DealerTurn:
		return "dealer_turn"
	default:
		return "finished"
	}
}

// Shoe supplies cards with replacement
type Shoe interface {
	DealWithReplacement(n int) []deck.Card
}

// Game is a single blackjack hand
type Game struct {
	game.Base
	shoe   Shoe
	logger *log.Logger

	player []deck.Card
	dealer []deck.Card
	phase  Phase
	payout float64
}

var _ game.Game = (*Game)(nil)

// New creates a hand dealt from a shuffled infinite shoe
func New(agents []game.AgentID, rng *rand.Rand, logger *log.Logger) (*Game, error) {
	return NewWithShoe(agents, deck.New(rng), logger)
}

// NewWithShoe creates a hand dealt from shoe
func NewWithShoe(agents []game.AgentID, shoe Shoe, logger *log.Logger) (*Game, error) {
	if len(agents) != 1 {
		return nil, fmt.Errorf("%s needs exactly one agent, got %d: %w", Name, len(agents), game.ErrAgentCount)
	}
	logger = game.DiscardLogger(logger)
	return &Game{
		Base:   game.NewBase(Name, agents, eventlog.New(logger)),
		shoe:   shoe,
		logger: logger,
	}, nil
}

// Init deals two cards to the player and one up card to the dealer. A
// natural 21 skips the player's turn and settles the hand immediately.
func (g *Game) Init() error {
	g.player = g.shoe.DealWithReplacement(2)
	g.dealer = g.shoe.DealWithReplacement(1)
	g.phase = PlayerTurn
	g.payout = 0

	g.Events().Pushf("Player hand: %s, Dealer shows: %s", deck.FormatCards(g.player), g.dealer[0])
	g.logger.Debug("Blackjack initialized", "player", deck.FormatCards(g.player), "dealer", g.dealer[0])

	if HandValue(g.player) == target {
		g.Events().Push("Player has Blackjack!")
		g.playDealer()
	}
	return nil
}

// Step applies HIT or STAND
func (g *Game) Step(a game.Action) (game.AgentID, error) {
	if err := g.CheckStep(g.LegalActions(g.CurrentAgent()), a); err != nil {
		return game.NoAgent, err
	}
	action := a.(Action)
	g.Events().Pushf("[Agent %d] %s", g.CurrentAgent(), action)

	switch action.Kind {
	case Hit:
		card := g.shoe.DealWithReplacement(1)[0]
		g.player = append(g.player, card)
		g.Events().Pushf("Player hits, gets %s. Hand: %s", card, deck.FormatCards(g.player))
		if value := HandValue(g.player); value > target {
			g.Events().Pushf("Player busts with %d.", value)
			g.settle(-1)
		}
	case Stand:
		g.Events().Pushf("Player stands with %d.", HandValue(g.player))
		g.playDealer()
	}
	return g.Next(), nil
}

// playDealer draws for the dealer until 17 or more, then settles
func (g *Game) playDealer() {
	g.phase = DealerTurn
	g.Events().Pushf("Dealer's turn. Hand: %s (%d)", deck.FormatCards(g.dealer), HandValue(g.dealer))

	for HandValue(g.dealer) < dealerStand {
		card := g.shoe.DealWithReplacement(1)[0]
		g.dealer = append(g.dealer, card)
		g.Events().Pushf("Dealer hits, gets %s. Hand: %s (%d)", card, deck.FormatCards(g.dealer), HandValue(g.dealer))
	}
	if value := HandValue(g.dealer); value > target {
		g.Events().Pushf("Dealer busts with %d.", value)
	}
	g.resolve()
}

// resolve compares the final hands and settles the payout
func (g *Game) resolve() {
	playerValue := HandValue(g.player)
	dealerValue := HandValue(g.dealer)
	playerNatural := IsNatural(g.player)
	dealerNatural := IsNatural(g.dealer)

	g.Events().Pushf("Game resolved: Player (%d), Dealer (%d)", playerValue, dealerValue)

	var payout float64
	switch {
	case playerValue > target:
		payout = -1
	case dealerValue > target:
		payout = 1
	case playerNatural && !dealerNatural:
		payout = 1.5
	case dealerNatural && !playerNatural:
		payout = -1
	case playerValue > dealerValue:
		payout = 1
	case playerValue < dealerValue:
		payout = -1
	default:
		payout = 0
	}
	g.settle(payout)
}

func (g *Game) settle(payout float64) {
	g.payout = payout
	g.phase = Finished
	g.Events().Pushf("Payout: %.1f", payout)
	g.Finish()
}

// LegalActions returns HIT and STAND during the player's turn
func (g *Game) LegalActions(id game.AgentID) []game.Action {
	if !g.IsTurn(id) || g.phase != PlayerTurn {
		return nil
	}
	return []game.Action{Action{Kind: Hit}, Action{Kind: Stand}}
}

// Validate reports whether a is currently legal for id
func (g *Game) Validate(id game.AgentID, a game.Action) bool {
	return game.Contains(g.LegalActions(id), a)
}

// Payout returns the settled payout in bets: +1.5 natural, +1 win, 0 push, -1 loss
func (g *Game) Payout() (float64, error) {
	if !g.Done() {
		return 0, game.ErrNotDone
	}
	return g.payout, nil
}

// Scores maps the payout onto a win (1), push (0.5) or loss (0)
func (g *Game) Scores() (map[game.AgentID]float64, error) {
	if !g.Done() {
		return nil, game.ErrNotDone
	}
	score := 0.5
	switch {
	case g.payout > 0:
		score = 1
	case g.payout < 0:
		score = 0
	}
	return map[game.AgentID]float64{g.Agents()[0]: score}, nil
}

// View is the player's view of the table. The dealer's cards are all face up.
type View struct {
	PlayerHand  []deck.Card `json:"player_hand"`
	PlayerValue int         `json:"player_value"`
	DealerHand  []deck.Card `json:"dealer_hand"`
	DealerValue int         `json:"dealer_value"`
	Phase       string      `json:"phase"`
	Payout      *float64    `json:"payout"`
}

func (v View) String() string {
	b, _ := json.Marshal(v)
	return string(b)
}

// StateView returns the table as the player sees it
func (g *Game) StateView(game.AgentID) game.View {
	v := View{
		PlayerHand:  append([]deck.Card(nil), g.player...),
		PlayerValue: HandValue(g.player),
		DealerHand:  append([]deck.Card(nil), g.dealer...),
		DealerValue: HandValue(g.dealer),
		Phase:       g.phase.String(),
	}
	if g.Done() {
		payout := g.payout
		v.Payout = &payout
	}
	return v
}

// CardValue counts aces as 11 and faces as 10
func CardValue(c deck.Card) int {
	switch {
	case c.Rank == deck.Ace:
		return 11
	case c.Rank == deck.Ten || c.Rank.IsFace():
		return 10
	default:
		return int(c.Rank)
	}
}

// HandValue totals a hand, demoting aces to 1 while the total exceeds 21
func HandValue(cards []deck.Card) int {
	value, aces := 0, 0
	for _, c := range cards {
		value += CardValue(c)
		if c.Rank == deck.Ace {
			aces++
		}
	}
	for value > target && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// IsNatural reports a two-card 21
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && HandValue(cards) == target
}
