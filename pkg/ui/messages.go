package ui

import (
	"fmt"

	"github.com/quantfold/tradeterm/pkg/session"
)

// SetInline records a per-view validation message and echoes it.
func (t *Terminal) SetInline(area session.InlineArea, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inline[area] = text
	fmt.Fprintf(t.out, "[%s] %s\n", area, text)
}

// ClearInline drops all inline messages.
func (t *Terminal) ClearInline() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inline = map[session.InlineArea]string{}
}

// Alert prints a one-shot notice.
func (t *Terminal) Alert(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, ">> %s\n", text)
}
