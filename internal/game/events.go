package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for table events
const (
	EventTypeGameStart     EventType = "game_start"
	EventTypeRoundStart    EventType = "round_start"
	EventTypeWagerPlaced   EventType = "wager_placed"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypeShoeReshuffle EventType = "shoe_reshuffle"
	EventTypeHandsDealt    EventType = "hands_dealt"
	EventTypeTurnEnd       EventType = "turn_end"
	EventTypeDealerTurn    EventType = "dealer_turn"
	EventTypeSettlement    EventType = "settlement"
	EventTypeElimination   EventType = "elimination"
	EventTypeRoundEnd      EventType = "round_end"
	EventTypeGameOver      EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs at the table
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct {
	at time.Time
}

func (s stamp) Timestamp() time.Time { return s.at }

// GameStartEvent is published once the shoe is ready and the roster is seated
type GameStartEvent struct {
	Players  []PlayerSnapshot
	Decks    int
	ShoeSize int
	stamp
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }

// RoundStartEvent is published at the top of every round
type RoundStartEvent struct {
	Round  int
	Active []PlayerSnapshot
	stamp
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// WagerPlacedEvent is published when a stake is debited
type WagerPlacedEvent struct {
	Round    int
	Player   string
	Amount   int
	Bankroll int // after the debit
	stamp
}

func (e WagerPlacedEvent) EventType() EventType { return EventTypeWagerPlaced }

// DealerName is the recipient name used for cards dealt to the dealer
const DealerName = "Dealer"

// CardDealtEvent is published for every card leaving the shoe
type CardDealtEvent struct {
	Recipient string
	Card      deck.Card
	FaceDown  bool
	HandSize  int
	Value     int // 0 while the card is face down
	stamp
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// ShoeReshuffleEvent is published when an exhausted shoe is rebuilt
type ShoeReshuffleEvent struct {
	Decks     int
	Remaining int
	stamp
}

func (e ShoeReshuffleEvent) EventType() EventType { return EventTypeShoeReshuffle }

// SeatView is the visible state of one hand
type SeatView struct {
	Name  string
	Cards []deck.Card
	Value int
	Total string
}

// HandsDealtEvent is published after the initial deal. The dealer's hole card
// is not included.
type HandsDealtEvent struct {
	Round        int
	DealerUpCard deck.Card
	Seats        []SeatView
	stamp
}

func (e HandsDealtEvent) EventType() EventType { return EventTypeHandsDealt }

// TurnEndEvent is published when a player's turn finishes
type TurnEndEvent struct {
	Round   int
	Player  string
	Outcome TurnOutcome
	Cards   []deck.Card
	Value   int
	stamp
}

func (e TurnEndEvent) EventType() EventType { return EventTypeTurnEnd }

// DealerTurnEvent is published when the dealer's turn finishes, revealing the hole card
type DealerTurnEvent struct {
	Round   int
	Outcome TurnOutcome
	Cards   []deck.Card
	Value   int
	stamp
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }

// SettlementEvent is published for every active player at payout
type SettlementEvent struct {
	Round       int
	Player      string
	Result      HandState
	Wager       int
	Payout      int
	Net         int
	Bankroll    int // after the payout
	PlayerValue int
	DealerValue int
	stamp
}

func (e SettlementEvent) EventType() EventType { return EventTypeSettlement }

// EliminationEvent is published when a player drops to the elimination floor
type EliminationEvent struct {
	Round    int
	Player   string
	Bankroll int
	Floor    int
	stamp
}

func (e EliminationEvent) EventType() EventType { return EventTypeElimination }

// RoundEndEvent is published after hands are cleared and eliminations applied
type RoundEndEvent struct {
	Round         int
	ActivePlayers int
	ShoeRemaining int
	stamp
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// GameOverEvent is published once, when the engine reaches its terminal phase
type GameOverEvent struct {
	Rounds    int
	Reason    string
	Standings []PlayerSnapshot
	stamp
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }

// EventSubscriber receives published events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers see events
// in publish order, on the publisher's goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Only comparable
// subscribers can be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sameSubscriber(sub, subscriber) {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

func sameSubscriber(a, b EventSubscriber) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
