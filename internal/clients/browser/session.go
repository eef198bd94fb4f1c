package browser

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

type navigator interface {
	Navigate(ctx context.Context, url string) (string, error)
	Close() error
}

type launcher func(opts Options) (navigator, error)

// Session launches the browser on first use and drops it once it reports
// ErrSessionUnavailable, so the next navigation starts a fresh one.
type Session struct {
	opts    Options
	launch  launcher
	mu      sync.Mutex
	current navigator
}

func NewSession(opts Options) *Session {
	return newSession(opts, func(opts Options) (navigator, error) {
		return New(opts)
	})
}

func newSession(opts Options, launch launcher) *Session {
	return &Session{opts: opts, launch: launch}
}

func (s *Session) Navigate(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.current == nil {
		current, err := s.launch(s.opts)
		if err != nil {
			return "", err
		}
		log.Info("browser session started")
		s.current = current
	}

	page, err := s.current.Navigate(ctx, url)
	if errors.Is(err, ErrSessionUnavailable) {
		log.Warnf("browser session lost: %v", err)
		s.reset()
	}
	return page, err
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

func (s *Session) reset() {
	if err := s.current.Close(); err != nil {
		log.Debugf("failed to close lost browser session: %v", err)
	}
	s.current = nil
}
