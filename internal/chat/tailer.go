package chat

import (
	"io"
	stdlog "log"
	"strings"

	"github.com/hpcloud/tail"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/logging"
)

// FollowOptions tunes a Tailer.
type FollowOptions struct {
	// FromStart replays the existing file instead of starting at its end.
	FromStart bool
	// Poll watches the file by polling instead of inotify/kqueue.
	Poll bool
}

// Tailer follows a chat log file, surviving truncation and rotation.
type Tailer struct {
	path  string
	tail  *tail.Tail
	lines chan string
	done  chan struct{}
	log   *logrus.Entry
}

// Follow starts following the file at path. The file does not need to exist
// yet.
func Follow(path string, opts FollowOptions) (*Tailer, error) {
	whence := io.SeekEnd
	if opts.FromStart {
		whence = io.SeekStart
	}
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Poll:     opts.Poll,
		Location: &tail.SeekInfo{Offset: 0, Whence: whence},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return nil, err
	}

	tr := &Tailer{
		path:  path,
		tail:  t,
		lines: make(chan string, 64),
		done:  make(chan struct{}),
		log:   logging.NewLogger("chat").WithField("path", path),
	}
	go tr.forward()
	tr.log.Info("Following chat log")
	return tr, nil
}

func (t *Tailer) forward() {
	defer close(t.lines)
	for line := range t.tail.Lines {
		if line.Err != nil {
			t.log.WithError(line.Err).Debug("Error reading chat log line")
			continue
		}
		select {
		case t.lines <- strings.TrimRight(line.Text, "\r"):
		case <-t.done:
			return
		}
	}
}

// Path returns the followed file.
func (t *Tailer) Path() string {
	return t.path
}

// Lines delivers each appended line without its line ending. The channel is
// closed after Stop.
func (t *Tailer) Lines() <-chan string {
	return t.lines
}

// Stop ends following and releases the file.
func (t *Tailer) Stop() error {
	select {
	case <-t.done:
		return nil
	default:
	}
	close(t.done)
	err := t.tail.Stop()
	t.tail.Cleanup()
	return err
}
