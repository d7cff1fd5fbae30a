package tcellkey

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keyway/logutil"
	"github.com/lixenwraith/keyway/service"
)

var _ service.Service = (*Service)(nil)

// Service owns a tcell screen and runs its Loop on a background goroutine
type Service struct {
	screen  tcell.Screen
	h       Handler
	loop    *Loop
	cancel  context.CancelFunc
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	err     error
}

// NewService creates an unstarted terminal service
func NewService() *Service {
	return &Service{}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "tcell"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args may carry a Handler (required) and a tcell.Screen (optional,
// defaults to the process terminal)
func (s *Service) Init(args ...any) error {
	for _, a := range args {
		switch v := a.(type) {
		case tcell.Screen:
			s.screen = v
		case Handler:
			s.h = v
		}
	}
	if s.h == nil {
		return fmt.Errorf("tcell init: no handler")
	}
	if s.screen == nil {
		scr, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("tcell init: %w", err)
		}
		s.screen = scr
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	s.screen.EnableMouse()
	s.loop = NewLoop(s.screen, s.h, logutil.New("tcell"))
	return nil
}

// Start implements service.Service - launches the event loop
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if s.loop == nil {
		return fmt.Errorf("tcell start: not initialized")
	}
	s.running = true
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.doneCh = make(chan struct{})
	go s.run(ctx)
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	defer func() {
		if r := recover(); r != nil {
			s.screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTCELL LOOP CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	err := s.loop.Run(ctx)
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Stop implements service.Service - ends the loop and restores the terminal
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	<-s.doneCh
	s.screen.Fini()
	return nil
}

// Done is closed when the loop exits, either through Stop or because the
// handler asked to quit
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doneCh
}

// Loop returns the event loop
func (s *Service) Loop() *Loop { return s.loop }

// Screen returns the wrapped screen
func (s *Service) Screen() tcell.Screen { return s.screen }
