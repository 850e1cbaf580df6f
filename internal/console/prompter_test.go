package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterEndOfInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out, NewStyles(&out, true))
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewHumanController(p).Decide(ctx, testView())
	assert.ErrorIs(t, err, io.EOF)

	_, err = p.Ask(ctx, "How many players will there be?")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompterCancellation(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	p := NewPrompter(r, &out, NewStyles(&out, true))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHumanController(p).Decide(ctx, testView())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("prompter did not shut down after a cancelled prompt")
	}
}

func TestPrompterWritesAfterClose(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out, NewStyles(&out, true))
	p.Close()

	n, err := p.Write([]byte("Player 1 wins $10\npartial"))
	require.NoError(t, err)
	assert.Equal(t, len("Player 1 wins $10\npartial"), n)
	p.Warn("Please answer h or c")

	text := out.String()
	assert.Contains(t, text, "Player 1 wins $10\n")
	assert.Contains(t, text, "Please answer h or c")
	assert.NotContains(t, text, "partial")
}
