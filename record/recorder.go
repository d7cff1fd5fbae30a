package record

import (
	"io"
	"log"
	"time"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/logutil"
)

// Recorder taps a Hooks set and writes every event with its elapsed time.
// Used from the event loop goroutine.
type Recorder struct {
	clock Clock
	codec NativeCodec
	log   *log.Logger

	state State
	w     *Writer
	hooks *event.Hooks
	prev  event.Slots
	last  time.Time
	err   error
}

// RecorderOption configures a Recorder
type RecorderOption func(*Recorder)

// RecordClock replaces the system clock
func RecordClock(c Clock) RecorderOption {
	return func(r *Recorder) { r.clock = c }
}

// RecordCodec sets the native key codec used in ModeSys
func RecordCodec(c NativeCodec) RecorderOption {
	return func(r *Recorder) { r.codec = c }
}

// RecordLogger sets the logger
func RecordLogger(l *log.Logger) RecorderOption {
	return func(r *Recorder) { r.log = l }
}

func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{clock: SystemClock{}, log: logutil.Discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns Idle or Recording
func (r *Recorder) State() State { return r.state }

// Err returns the write error that ended the last session, if any
func (r *Recorder) Err() error { return r.err }

// Start writes the header to w and arms the taps of hooks. Taps installed
// before Start keep receiving events.
func (r *Recorder) Start(w io.Writer, mode Mode, hooks *event.Hooks) error {
	if r.state == StateRecording {
		return ErrBusy
	}
	wr, err := NewWriter(w, mode, r.codec)
	if err != nil {
		return err
	}
	r.w = wr
	r.hooks = hooks
	r.err = nil
	r.last = r.clock.Now()
	r.state = StateRecording

	prev := hooks.Slots()
	r.prev = hooks.Swap(event.Slots{
		Button: func(e event.ButtonEvent) {
			r.write(event.Button(e))
			if prev.Button != nil {
				prev.Button(e)
			}
		},
		Motion: func(e event.MotionEvent) {
			r.write(event.Motion(e))
			if prev.Motion != nil {
				prev.Motion(e)
			}
		},
		Key: func(e event.KeyEvent) {
			r.write(event.Key(e))
			if prev.Key != nil {
				prev.Key(e)
			}
		},
		Wheel: func(e event.WheelEvent) {
			r.write(event.Wheel(e))
			if prev.Wheel != nil {
				prev.Wheel(e)
			}
		},
	})
	r.log.Printf("record: start mode=%s", mode)
	return nil
}

// Stop restores the previous taps and flushes the stream. The returned error
// is the first write failure of the session.
func (r *Recorder) Stop() error {
	if r.state != StateRecording {
		return nil
	}
	r.hooks.Set(r.prev)
	if err := r.w.Flush(); err != nil && r.err == nil {
		r.err = err
	}
	r.state = StateIdle
	r.w, r.hooks, r.prev = nil, nil, event.Slots{}
	r.log.Printf("record: stop err=%v", r.err)
	return r.err
}

func (r *Recorder) write(ev event.Event) {
	if r.state != StateRecording {
		return
	}
	now := r.clock.Now()
	elapsed := int32(now.Sub(r.last) / time.Millisecond)
	r.last = now
	if err := r.w.Write(Record{Elapsed: elapsed, Event: ev}); err != nil {
		r.err = err
		r.log.Printf("record: %v", err)
		r.Stop()
	}
}
