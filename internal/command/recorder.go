package command

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/logging"
)

// Sent dispatch kinds recorded by a Recorder.
const (
	SentCommand     = "command"
	SentSearch      = "search"
	SentClearSearch = "clear_search"
)

// Sent is one dispatch observed by a Recorder.
type Sent struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Recorder is a Dispatcher that only records what it is asked to send. With a
// logger attached it serves as the dry-run dispatcher.
type Recorder struct {
	// Err, when set, is returned from every call after recording it.
	Err error

	log *logrus.Entry

	mu   sync.Mutex
	sent []Sent
}

// NewRecorder returns a silent Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewDryRun returns a Recorder that logs every command at info level instead
// of typing it.
func NewDryRun() *Recorder {
	return &Recorder{log: logging.NewLogger("command")}
}

func (r *Recorder) Command(ctx context.Context, text string) error {
	return r.record(Sent{Kind: SentCommand, Text: text})
}

func (r *Recorder) Search(ctx context.Context, text string) error {
	return r.record(Sent{Kind: SentSearch, Text: text})
}

func (r *Recorder) ClearSearch(ctx context.Context) error {
	return r.record(Sent{Kind: SentClearSearch})
}

func (r *Recorder) record(s Sent) error {
	r.mu.Lock()
	r.sent = append(r.sent, s)
	r.mu.Unlock()
	if r.log != nil {
		r.log.WithFields(logrus.Fields{"kind": s.Kind, "text": s.Text}).Info("Dry run: not sending")
	}
	return r.Err
}

// Sent returns a copy of everything recorded so far.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}

// Commands returns only the text of recorded chat commands.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.sent {
		if s.Kind == SentCommand {
			out = append(out, s.Text)
		}
	}
	return out
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sent = nil
	r.mu.Unlock()
}
