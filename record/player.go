package record

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/logutil"
)

// Player reads a record stream and re-injects each event after the delay it
// was recorded with. Each step is scheduled, never slept. Two buttons held
// at once are not tracked: each record replays on its own.
type Player struct {
	clock Clock
	sched Scheduler
	inj   Injector
	codec NativeCodec
	log   *log.Logger

	mu     sync.Mutex
	state  State
	rd     *Reader
	src    io.Reader
	last   time.Time
	cancel func()
	gen    uint64
	err    error
	onDone func(error)
}

// PlayerOption configures a Player
type PlayerOption func(*Player)

// PlayClock replaces the system clock
func PlayClock(c Clock) PlayerOption {
	return func(p *Player) { p.clock = c }
}

// PlayScheduler replaces the timer scheduler
func PlayScheduler(s Scheduler) PlayerOption {
	return func(p *Player) { p.sched = s }
}

// PlayCodec sets the native key codec used in ModeSys
func PlayCodec(c NativeCodec) PlayerOption {
	return func(p *Player) { p.codec = c }
}

// PlayLogger sets the logger
func PlayLogger(l *log.Logger) PlayerOption {
	return func(p *Player) { p.log = l }
}

// OnDone is called once per session when playback ends on its own, with nil
// at end of stream or the read error
func OnDone(fn func(error)) PlayerOption {
	return func(p *Player) { p.onDone = fn }
}

func NewPlayer(inj Injector, opts ...PlayerOption) *Player {
	p := &Player{
		clock: SystemClock{},
		sched: TimerScheduler{},
		inj:   inj,
		log:   logutil.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns Idle, Playing or Error
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error that ended the last session
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Start validates the signature of r and schedules the first record. If r is
// an io.Closer it is closed when playback ends. On error the player is left
// unchanged and r is not closed.
func (p *Player) Start(r io.Reader) error {
	p.mu.Lock()
	if p.state == StatePlaying {
		p.mu.Unlock()
		return ErrBusy
	}
	rd, err := NewReader(r, p.codec)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.rd = rd
	p.src = r
	p.err = nil
	p.state = StatePlaying
	p.last = p.clock.Now()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	p.log.Printf("play: start mode=%s", rd.Mode())
	p.step(gen)
	return nil
}

// Stop cancels a running session
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return
	}
	p.finishLocked(nil)
	p.mu.Unlock()
	p.log.Printf("play: stopped")
}

// step reads one record and schedules its injection
func (p *Player) step(gen uint64) {
	p.mu.Lock()
	if p.state != StatePlaying || p.gen != gen {
		p.mu.Unlock()
		return
	}
	rec, err := p.rd.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		p.finishLocked(err)
		done := p.onDone
		p.mu.Unlock()
		if err != nil {
			p.log.Printf("play: %v", err)
		} else {
			p.log.Printf("play: end of stream")
		}
		if done != nil {
			done(err)
		}
		return
	}

	delay := time.Duration(rec.Elapsed)*time.Millisecond - p.clock.Now().Sub(p.last)
	if delay < 0 {
		delay = 0
	}
	p.mu.Unlock()

	cancel := p.sched.After(delay, func() { p.fire(gen, rec) })

	p.mu.Lock()
	if p.gen == gen && p.state == StatePlaying {
		p.cancel = cancel
	}
	p.mu.Unlock()
}

func (p *Player) fire(gen uint64, rec Record) {
	p.mu.Lock()
	if p.state != StatePlaying || p.gen != gen {
		p.mu.Unlock()
		return
	}
	p.cancel = nil
	p.mu.Unlock()

	switch e := rec.Event.Payload.(type) {
	case event.ButtonEvent:
		p.inj.InjectButton(e.X, e.Y, e.Button, e.Status)
	case event.MotionEvent:
		p.inj.InjectButton(e.X, e.Y, e.Button, event.StatusMotion)
	case event.KeyEvent:
		p.inj.InjectKey(e.Code, e.Pressed)
	case event.WheelEvent:
		p.inj.InjectWheel(e.Delta, e.X, e.Y)
	}

	p.mu.Lock()
	p.last = p.clock.Now()
	p.mu.Unlock()
	p.step(gen)
}

// finishLocked tears the session down and releases the stream
func (p *Player) finishLocked(err error) {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if c, ok := p.src.(io.Closer); ok {
		c.Close()
	}
	p.rd, p.src = nil, nil
	p.gen++
	p.err = err
	if err != nil {
		p.state = StateError
	} else {
		p.state = StateIdle
	}
}
