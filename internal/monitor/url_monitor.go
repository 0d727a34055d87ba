package monitor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/repository"
)

// URLMonitor periodically probes the destination URLs of active links and
// logs a notification whenever one changes between accessible and broken.
// It keeps a state map so only transitions are reported, not every check.
type URLMonitor struct {
	linkRepo    repository.LinkRepository
	interval    time.Duration
	knownStates map[uint]bool // link ID -> last observed accessibility
	mu          sync.Mutex
	httpClient  *http.Client
}

// NewURLMonitor creates and returns a new instance of URLMonitor.
// interval determines how frequently the destinations are checked.
func NewURLMonitor(linkRepo repository.LinkRepository, interval time.Duration) *URLMonitor {
	return &URLMonitor{
		linkRepo:    linkRepo,
		interval:    interval,
		knownStates: make(map[uint]bool),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Start runs the monitoring loop until the context is cancelled. An immediate
// check is executed at startup before waiting for the first tick.
func (m *URLMonitor) Start(ctx context.Context) {
	logger.Info("starting destination URL monitor", zap.Duration("interval", m.interval))
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.checkURLs(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("destination URL monitor stopped")
			return
		case <-ticker.C:
			m.checkURLs(ctx)
		}
	}
}

// checkURLs probes every active link's destination and logs state changes.
func (m *URLMonitor) checkURLs(ctx context.Context) {
	links, err := m.linkRepo.GetAllLinks()
	if err != nil {
		logger.Error("failed to load links for monitoring", zap.Error(err))
		return
	}

	for _, link := range links {
		if !link.IsActive {
			continue
		}

		currentState := m.isURLAccessible(ctx, link.OriginalURL)

		m.mu.Lock()
		previousState, seen := m.knownStates[link.ID]
		m.knownStates[link.ID] = currentState
		m.mu.Unlock()

		if !seen {
			logger.Debug("initial destination state",
				zap.String("short_code", link.ShortCode),
				zap.String("url", link.OriginalURL),
				zap.Bool("accessible", currentState))
			continue
		}

		if currentState != previousState {
			logger.Warn("destination accessibility changed",
				zap.String("short_code", link.ShortCode),
				zap.String("url", link.OriginalURL),
				zap.Bool("was_accessible", previousState),
				zap.Bool("accessible", currentState))
		}
	}
}

// isURLAccessible performs an HTTP HEAD request against the destination.
// 2xx and 3xx responses count as accessible; 4xx and 5xx do not.
func (m *URLMonitor) isURLAccessible(ctx context.Context, url string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
	if err != nil {
		logger.Debug("failed to build monitor request", zap.String("url", url), zap.Error(err))
		return false
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
