package notify

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/safe"
)

// ConsolePlatform renders notifications to a terminal. Printed text
// cannot be retracted, so Dismiss only forgets the notification.
type ConsolePlatform struct {
	mu    sync.Mutex
	w     io.Writer
	shown map[string]struct{}
}

var _ Platform = &ConsolePlatform{}

func NewConsolePlatform(w io.Writer) *ConsolePlatform {
	if w == nil {
		w = os.Stderr
	}
	return &ConsolePlatform{
		w:     w,
		shown: make(map[string]struct{}),
	}
}

func titleColor(p types.Priority) *color.Color {
	switch p {
	case types.PriorityCritical:
		return color.New(color.FgRed, color.Bold)
	case types.PriorityHigh:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func (p *ConsolePlatform) Show(ctx context.Context, n *Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := titleColor(n.Intent.Priority).Sprint(n.Intent.Title)
	safe.Write(ctx, p.w, []byte("\n"+title+"\n"+n.Intent.Body+"\n"))
	p.shown[n.ID] = struct{}{}
	return nil
}

func (p *ConsolePlatform) Dismiss(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.shown, id)
	return nil
}
