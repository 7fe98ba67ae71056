// Package game implements the table state for five-card draw.
//
// A Game walks through a fixed sequence of stages:
//
//	Lobby -> Dealing -> FirstAuction -> Exchange -> SecondAuction -> Showdown -> Finished
//
// The roster is kept in join order and the founder always sits first. Turn
// order inside an auction or the exchange round comes from a FIFO queue of
// player ids that is rebuilt from the join order whenever a round starts.
//
// # Basic Usage
//
//	g := game.New(1, founder, 3, game.DefaultRules(), rng)
//	g.AddPlayer(bob)
//	g.AddPlayer(carol) // JoinFilled, the game moves to Dealing
//
//	hand, _ := g.RequestCards(founder.ID)
//	step, next, _ := g.AcceptCards(founder.ID)
//
// A Game is not safe for concurrent use. The server mutates every game from a
// single goroutine.
package game
