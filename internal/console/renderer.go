package console

import (
	"fmt"
	"io"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/game"
)

// cardPattern matches a rendered card such as "Q♥" or "T♠"
var cardPattern = regexp.MustCompile(`[A2-9TJQK][♥♦♠♣]`)

// RendererOptions controls what the renderer prints
type RendererOptions struct {
	ShowCardDeals bool
	LongCardNames bool
	Perspective   string // render this player as "You"
	Quiet         bool   // only print game over
}

// Renderer prints table events to a terminal. It is an event bus subscriber.
type Renderer struct {
	out       io.Writer
	styles    Styles
	formatter *game.EventFormatter
	quiet     bool
}

var _ game.EventSubscriber = (*Renderer)(nil)

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, styles Styles, opts RendererOptions) *Renderer {
	return &Renderer{
		out:    out,
		styles: styles,
		formatter: game.NewEventFormatter(game.FormattingOptions{
			ShowCardDeals: opts.ShowCardDeals,
			LongCardNames: opts.LongCardNames,
			Perspective:   opts.Perspective,
		}),
		quiet: opts.Quiet,
	}
}

// OnEvent renders a single event
func (r *Renderer) OnEvent(event game.GameEvent) {
	if r.quiet && event.EventType() != game.EventTypeGameOver {
		return
	}

	lines := r.formatter.Format(event)
	if len(lines) == 0 {
		return
	}

	switch e := event.(type) {
	case game.RoundStartEvent:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Header.Render(lines[0]))
		return
	case game.SettlementEvent:
		fmt.Fprintln(r.out, r.resultStyle(e.Result).Render(lines[0]))
		return
	case game.EliminationEvent:
		fmt.Fprintln(r.out, r.styles.Lose.Render(lines[0]))
		return
	case game.ShoeReshuffleEvent:
		fmt.Fprintln(r.out, r.styles.Info.Render(lines[0]))
		return
	case game.GameOverEvent:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Header.Render(lines[0]))
		for _, line := range lines[1:] {
			fmt.Fprintln(r.out, line)
		}
		return
	}

	for _, line := range lines {
		fmt.Fprintln(r.out, r.colorCards(line))
	}
}

func (r *Renderer) resultStyle(result game.HandState) lipgloss.Style {
	switch result {
	case game.StateWin, game.StateBlackjack:
		return r.styles.Win
	case game.StatePush:
		return r.styles.Push
	default:
		return r.styles.Lose
	}
}

// colorCards paints red suits red and black suits in the card style
func (r *Renderer) colorCards(line string) string {
	return cardPattern.ReplaceAllStringFunc(line, func(card string) string {
		suit := []rune(card)[1]
		if suit == '♥' || suit == '♦' {
			return r.styles.RedCard.Render(card)
		}
		return r.styles.BlackCard.Render(card)
	})
}
