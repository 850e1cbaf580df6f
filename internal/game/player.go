package game

import "fmt"

// Player represents a seat at the table
type Player struct {
	Name       string
	Bankroll   int
	Wager      int
	Active     bool
	Hand       Hand
	Controller Controller
}

// NewPlayer creates an active player with an empty hand
func NewPlayer(name string, bankroll int, controller Controller) *Player {
	return &Player{
		Name:       name,
		Bankroll:   bankroll,
		Active:     true,
		Controller: controller,
	}
}

// Kind returns the kind of controller driving the player
func (p *Player) Kind() ControllerKind {
	return p.Controller.Kind()
}

// PlaceWager debits amount from the bankroll and records it as the wager
func (p *Player) PlaceWager(amount int) error {
	if amount <= 0 || amount > p.Bankroll {
		return fmt.Errorf("%w: %s wagered %d with bankroll %d", ErrInvalidWager, p.Name, amount, p.Bankroll)
	}
	p.Bankroll -= amount
	p.Wager = amount
	return nil
}

// Credit adds a settlement payout to the bankroll
func (p *Player) Credit(amount int) {
	p.Bankroll += amount
}

// ClearWager resets the wager after settlement
func (p *Player) ClearWager() {
	p.Wager = 0
}

// Snapshot returns a copy of the player's public state
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Name:     p.Name,
		Bankroll: p.Bankroll,
		Wager:    p.Wager,
		Active:   p.Active,
		Kind:     p.Kind(),
	}
}

// PlayerSnapshot is an immutable copy of a player's public state carried on events
type PlayerSnapshot struct {
	Name     string
	Bankroll int
	Wager    int
	Active   bool
	Kind     ControllerKind
}
