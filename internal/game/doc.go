// Package game implements the core blackjack table logic.
//
// The main type is Engine, which drives one dealer and an ordered roster of
// players through a fixed phase machine until every player is eliminated:
//
//	Idle → NewGame → RoundStart → PlaceBets → DealHands → PlayersTurn →
//	DealerTurn → Payout → RoundEnd → (RoundStart | GameOver)
//
// # Basic Usage
//
//	rules := game.DefaultRules()
//	shoe, _ := deck.NewShoe(rules.Decks, randutil.New(42))
//	dealer := game.NewDealer(shoe, rules.DealerStandsOn)
//	players := []*game.Player{
//	    game.NewPlayer("Alice", rules.StartingBankroll, game.NewAutoController(randutil.New(1), rules)),
//	}
//	engine, _ := game.NewEngine(rules, dealer, players)
//	err := engine.Run(ctx)
//
// # Decisions
//
// Players act through a Controller chosen when the player is created. The
// engine never branches on whether a player is human: AutoController plays the
// dealer's policy, and the console package supplies a prompt-driven controller.
//
// # Events
//
// Everything the table does is published on an EventBus. Presentation layers
// and statistics collectors subscribe to it; the engine itself never prints.
//
// # Deterministic Testing
//
// Inject a seeded source through randutil.New, or stack the exact cards to be
// dealt with deck.NewShoeFromCards.
package game
