package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
)

// Dealer owns the shoe and its own hand. It is the only component that draws
// cards; players receive them through Deal.
type Dealer struct {
	shoe     *deck.Shoe
	hand     Hand
	standsOn int
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
}

// NewDealer creates a dealer drawing from shoe and standing on standsOn or more
func NewDealer(shoe *deck.Shoe, standsOn int) *Dealer {
	return &Dealer{
		shoe:     shoe,
		standsOn: standsOn,
		logger:   log.Default().WithPrefix("dealer"),
		eventBus: NewEventBus(),
		clock:    quartz.NewReal(),
	}
}

// attach wires the dealer into an engine's logger, bus and clock
func (d *Dealer) attach(logger *log.Logger, bus EventBus, clock quartz.Clock) {
	d.logger = logger.WithPrefix("dealer")
	d.eventBus = bus
	d.clock = clock
}

// Hand returns the dealer's hand
func (d *Dealer) Hand() *Hand {
	return &d.hand
}

// UpCard returns the dealer's first, face-up card
func (d *Dealer) UpCard() (deck.Card, bool) {
	if d.hand.Len() == 0 {
		return deck.Card{}, false
	}
	return d.hand.cards[0], true
}

// ShoeRemaining returns the number of cards left in the shoe
func (d *Dealer) ShoeRemaining() int {
	return d.shoe.Remaining()
}

// PrepareShoe rebuilds the shoe from fresh decks and shuffles it
func (d *Dealer) PrepareShoe() {
	d.shoe.Build()
	d.shoe.Shuffle()
	d.logger.Debug("Shoe prepared", "decks", d.shoe.Decks(), "cards", d.shoe.Remaining())
}

// draw takes the top card, rebuilding and reshuffling an exhausted shoe once
func (d *Dealer) draw() (deck.Card, error) {
	if card, ok := d.shoe.Draw(); ok {
		return card, nil
	}

	d.PrepareShoe()
	d.eventBus.Publish(ShoeReshuffleEvent{
		Decks:     d.shoe.Decks(),
		Remaining: d.shoe.Remaining(),
		stamp:     stamp{d.clock.Now()},
	})

	card, ok := d.shoe.Draw()
	if !ok {
		return deck.Card{}, fmt.Errorf("%w: %d decks", ErrShoeExhausted, d.shoe.Decks())
	}
	return card, nil
}

// Deal draws one card into h and announces it. Face-down cards are announced
// without their value.
func (d *Dealer) Deal(recipient string, h *Hand, faceDown bool) (deck.Card, error) {
	card, err := d.draw()
	if err != nil {
		return deck.Card{}, err
	}
	h.Add(card)

	event := CardDealtEvent{
		Recipient: recipient,
		Card:      card,
		FaceDown:  faceDown,
		HandSize:  h.Len(),
		stamp:     stamp{d.clock.Now()},
	}
	if !faceDown {
		event.Value = h.Value()
	}
	d.eventBus.Publish(event)
	return card, nil
}

// DealSelf deals one card to the dealer's own hand
func (d *Dealer) DealSelf(faceDown bool) (deck.Card, error) {
	return d.Deal(DealerName, &d.hand, faceDown)
}

// PlayTurn runs the dealer's fixed policy: a two-card 21 is blackjack,
// otherwise draw while below the stand total, then bust or stand.
func (d *Dealer) PlayTurn() (TurnOutcome, error) {
	if d.hand.Len() < 2 {
		return OutcomeStand, fmt.Errorf("%w: dealer holds %d cards at its turn", ErrEmptyHand, d.hand.Len())
	}

	if d.hand.IsNatural() {
		d.logger.Debug("Dealer blackjack", "hand", d.hand.String())
		return resolveTurn(&d.hand, OutcomeBlackjack), nil
	}

	for d.hand.Value() < d.standsOn {
		if _, err := d.DealSelf(false); err != nil {
			return OutcomeStand, err
		}
		d.logger.Debug("Dealer hits", "hand", d.hand.String(), "value", d.hand.Value())
	}

	if d.hand.IsBust() {
		d.logger.Debug("Dealer busts", "hand", d.hand.String(), "value", d.hand.Value())
		return resolveTurn(&d.hand, OutcomeBust), nil
	}

	d.logger.Debug("Dealer stands", "hand", d.hand.String(), "value", d.hand.Value())
	return resolveTurn(&d.hand, OutcomeStand), nil
}

// ClearHand discards the dealer's cards; the shoe keeps its remaining cards
func (d *Dealer) ClearHand() {
	d.hand.Clear()
}
