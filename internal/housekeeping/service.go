// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"time"

	"github.com/Gary0302/Mind-BE/internal/logging"
)

const (
	// DefaultCheckInterval is the time between token purge runs.
	DefaultCheckInterval = 1 * time.Hour
)

// TokenStore defines the repository methods required by the housekeeping service.
// This decouples the housekeeping logic from the concrete database implementation.
type TokenStore interface {
	PurgeExpiredRefreshTokens() (int64, error)
}

// Service provides the background worker for automated cleanup.
type Service struct {
	store    TokenStore
	interval time.Duration
	timer    *time.Timer
	stopCh   chan struct{}
}

// NewService creates a new housekeeping service instance.
func NewService(store TokenStore) *Service {
	return &Service{
		store:    store,
		interval: DefaultCheckInterval,
		stopCh:   make(chan struct{}),
	}
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	logging.Log.Info("Starting background housekeeping service.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				s.timer.Reset(s.interval)
				logging.Log.Debugf("Next housekeeping check scheduled in %v.", s.interval)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service.
func (s *Service) Stop() {
	logging.Log.Info("Stopping background housekeeping service.")
	close(s.stopCh)
}

// runChecks removes refresh tokens whose expiry has elapsed.
func (s *Service) runChecks() {
	logging.Log.Debug("Housekeeping service: purging expired refresh tokens...")
	purged, err := s.store.PurgeExpiredRefreshTokens()
	if err != nil {
		logging.Log.Errorf("Housekeeping token purge failed: %v", err)
		return
	}
	if purged > 0 {
		logging.Log.Infof("Housekeeping purged %d expired refresh tokens.", purged)
	}
}
