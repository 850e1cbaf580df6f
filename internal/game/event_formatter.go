package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowCardDeals bool   // Announce every card as it leaves the shoe
	LongCardNames bool   // "Queen of Hearts" instead of "Q♥"
	Perspective   string // Player name for personalized formatting
}

// EventFormatter provides centralized formatting for all table events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders an event as text lines. It returns nil for events that are
// not shown under the formatter's options.
func (ef *EventFormatter) Format(event GameEvent) []string {
	switch e := event.(type) {
	case GameStartEvent:
		return []string{fmt.Sprintf("Welcome to blackjack: %d players, %d-deck shoe", len(e.Players), e.Decks)}
	case RoundStartEvent:
		return []string{fmt.Sprintf("-+- Round %d -+-", e.Round)}
	case WagerPlacedEvent:
		return []string{fmt.Sprintf("%s will wager $%d (bankroll $%d)", ef.name(e.Player), e.Amount, e.Bankroll)}
	case CardDealtEvent:
		return ef.formatCardDealt(e)
	case ShoeReshuffleEvent:
		return []string{fmt.Sprintf("Shoe exhausted: reshuffling %d decks", e.Decks)}
	case HandsDealtEvent:
		return ef.formatHandsDealt(e)
	case TurnEndEvent:
		return []string{fmt.Sprintf("%s %s with %s (%d)", ef.name(e.Player), ef.outcomeVerb(e.Outcome), ef.cards(e.Cards), e.Value)}
	case DealerTurnEvent:
		return []string{fmt.Sprintf("Dealer %s with %s (%d)", ef.outcomeVerb(e.Outcome), ef.cards(e.Cards), e.Value)}
	case SettlementEvent:
		return []string{ef.formatSettlement(e)}
	case EliminationEvent:
		return []string{fmt.Sprintf("%s is out of the game with $%d", ef.name(e.Player), e.Bankroll)}
	case RoundEndEvent:
		return nil
	case GameOverEvent:
		return ef.formatGameOver(e)
	default:
		return nil
	}
}

func (ef *EventFormatter) formatCardDealt(e CardDealtEvent) []string {
	if !ef.opts.ShowCardDeals {
		return nil
	}
	if e.FaceDown {
		return []string{fmt.Sprintf("%s receives a face-down card", ef.name(e.Recipient))}
	}
	return []string{fmt.Sprintf("%s receives %s (%d)", ef.name(e.Recipient), ef.card(e.Card.String(), e.Card.LongString()), e.Value)}
}

func (ef *EventFormatter) formatHandsDealt(e HandsDealtEvent) []string {
	lines := []string{fmt.Sprintf("Dealer shows %s", ef.card(e.DealerUpCard.String(), e.DealerUpCard.LongString()))}
	for _, seat := range e.Seats {
		lines = append(lines, fmt.Sprintf("%s: %s total %s", ef.name(seat.Name), ef.cards(seat.Cards), seat.Total))
	}
	return lines
}

func (ef *EventFormatter) formatSettlement(e SettlementEvent) string {
	name := ef.name(e.Player)
	switch e.Result {
	case StateBlackjack:
		return fmt.Sprintf("%s: blackjack! wins $%d (bankroll $%d)", name, e.Net, e.Bankroll)
	case StateWin:
		return fmt.Sprintf("%s: %d beats %d, wins $%d (bankroll $%d)", name, e.PlayerValue, e.DealerValue, e.Net, e.Bankroll)
	case StatePush:
		return fmt.Sprintf("%s: push at %d, wager returned (bankroll $%d)", name, e.PlayerValue, e.Bankroll)
	default:
		return fmt.Sprintf("%s: loses $%d (bankroll $%d)", name, e.Wager, e.Bankroll)
	}
}

func (ef *EventFormatter) formatGameOver(e GameOverEvent) []string {
	lines := []string{fmt.Sprintf("Game over after %d rounds: %s", e.Rounds, e.Reason)}
	for _, s := range e.Standings {
		status := "out"
		if s.Active {
			status = "in"
		}
		lines = append(lines, fmt.Sprintf("  %-12s $%-6d %s", s.Name, s.Bankroll, status))
	}
	return append(lines, "Thanks for playing!")
}

func (ef *EventFormatter) outcomeVerb(o TurnOutcome) string {
	switch o {
	case OutcomeBust:
		return "busts"
	case OutcomeBlackjack:
		return "has blackjack"
	default:
		return "stands"
	}
}

func (ef *EventFormatter) name(player string) string {
	if ef.opts.Perspective != "" && player == ef.opts.Perspective {
		return "You"
	}
	return player
}

func (ef *EventFormatter) card(short, long string) string {
	if ef.opts.LongCardNames {
		return long
	}
	return short
}

func (ef *EventFormatter) cards(cards []deck.Card) string {
	if !ef.opts.LongCardNames {
		return FormatCards(cards)
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.LongString()
	}
	return strings.Join(names, ", ")
}
