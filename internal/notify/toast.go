// Package notify implements the transient-message sink workflow actions
// report through.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"docuflow/internal/domain"
)

// Toast writes transient messages to a terminal writer.
type Toast struct {
	mu  sync.Mutex
	out io.Writer
}

// NewToast creates a toast sink writing to out.
func NewToast(out io.Writer) *Toast {
	return &Toast{out: out}
}

// Show displays a transient message. Fire-and-forget: write errors are
// swallowed, a lost toast must never fail the action that sent it.
func (t *Toast) Show(message string, kind domain.NotificationKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[%s] %s\n", strings.ToUpper(string(kind)), message)
}
