// Package game defines the contract every turn-based card game satisfies.
//
// A Game is a state machine driven one action at a time. The controller asks
// whose turn it is, shows that agent its StateView and LegalActions, and feeds
// the chosen action back through Step:
//
//	g := gofish.New(agents, rng, logger)
//	if err := g.Init(); err != nil {
//	    return err
//	}
//	for !g.Done() {
//	    id := g.CurrentAgent()
//	    legal := g.LegalActions(id)
//	    if _, err := g.Step(legal[0]); err != nil {
//	        return err
//	    }
//	}
//	scores, _ := g.Scores()
//
// # State projection
//
// Engines keep hands and piles unexported. StateView builds a fresh,
// JSON-serialisable value holding only what the given agent may see, so
// another agent's hidden hand never leaves the engine.
//
// # Contract violations
//
// Step with an action outside LegalActions, or on a finished game, returns an
// error wrapping ErrIllegalAction or ErrGameOver. Callers validate first;
// such an error always means a bug and is never retried.
//
// # Base
//
// Engines embed Base for the bookkeeping shared by all games: agent ids,
// turn rotation, the done flag and the event log.
package game
