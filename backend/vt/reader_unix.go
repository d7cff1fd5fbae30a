//go:build unix

package vt

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/logutil"
)

// escapeTimeout separates a standalone ESC from the start of a sequence
const escapeTimeout = 50 * time.Millisecond

// pollInterval bounds how long a read blocks before checking for cancellation
const pollInterval = 100 * time.Millisecond

var (
	mouseOn  = []byte("\x1b[?1000h\x1b[?1002h\x1b[?1006h")
	mouseOff = []byte("\x1b[?1006l\x1b[?1002l\x1b[?1000l")
)

// Reader puts a terminal in raw mode and decodes its input
type Reader struct {
	in     *os.File
	out    *os.File
	fd     int
	old    *term.State
	mouse  bool
	parser *Parser
	events chan event.Event
	log    *log.Logger
}

// Open switches in to raw mode. With mouse set, SGR mouse reporting is
// enabled on out.
func Open(in, out *os.File, mouse bool, logger *log.Logger) (*Reader, error) {
	if logger == nil {
		logger = logutil.Discard
	}
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", in.Name())
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	r := &Reader{
		in:     in,
		out:    out,
		fd:     fd,
		old:    old,
		mouse:  mouse,
		parser: NewParser(),
		events: make(chan event.Event, 256),
		log:    logger,
	}
	if mouse && out != nil {
		out.Write(mouseOn)
	}
	return r, nil
}

// Events returns the decoded event channel. It is closed when Run returns.
func (r *Reader) Events() <-chan event.Event {
	return r.events
}

// Run reads until ctx is done or the input fails
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.events)
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		timeout := pollInterval
		if r.parser.Pending() {
			timeout = escapeTimeout
		}
		fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("poll: %w", err)
		}
		if n == 0 {
			if r.parser.Pending() {
				if !r.send(ctx, r.parser.Flush()) {
					return ctx.Err()
				}
			}
			continue
		}
		rn, err := unix.Read(r.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return fmt.Errorf("read: %w", err)
		}
		if rn == 0 {
			r.log.Printf("input closed")
			return nil
		}
		if !r.send(ctx, r.parser.Feed(buf[:rn])) {
			return ctx.Err()
		}
	}
}

func (r *Reader) send(ctx context.Context, evs []event.Event) bool {
	for _, ev := range evs {
		select {
		case r.events <- ev:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// Close disables mouse reporting and restores the terminal mode
func (r *Reader) Close() error {
	if r.mouse && r.out != nil {
		r.out.Write(mouseOff)
	}
	if r.old == nil {
		return nil
	}
	err := term.Restore(r.fd, r.old)
	r.old = nil
	return err
}
