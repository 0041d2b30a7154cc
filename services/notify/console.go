package notifysvc

import (
	"log"
	"sync"

	"github.com/eldad2003/pharmverse-edu-hub/core"
)

// Sent is one delivered ack with its audience.
type Sent struct {
	Audience string
	Ack      core.Ack
}

// ConsoleNotifier writes acks to a std logger and keeps them for inspection.
type ConsoleNotifier struct {
	std           *log.Logger
	disableOutput bool

	mu   sync.Mutex
	sent []Sent
}

var _ core.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(std *log.Logger, conf *core.Config) *ConsoleNotifier {
	return &ConsoleNotifier{std: std, disableOutput: conf.TestMode}
}

func (n *ConsoleNotifier) Notify(audience string, acks ...core.Ack) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ack := range acks {
		n.sent = append(n.sent, Sent{Audience: audience, Ack: ack})
		if !n.disableOutput {
			n.std.Printf("[%s] %s: %s\n", audience, ack.Title, ack.Description)
		}
	}
}

// Sent returns a copy of every ack delivered so far.
func (n *ConsoleNotifier) Sent() []Sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Sent, len(n.sent))
	copy(out, n.sent)
	return out
}
