package worker

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// KeepAliveWorker pings a configured URL on an interval so free-tier hosts
// do not idle the service. It is disabled unless a target URL is set;
// platform health probes against /health are the preferred mechanism.
type KeepAliveWorker struct {
	TargetURL    string
	Interval     time.Duration
	ErrorBackoff time.Duration
	Client       *http.Client
	Logger       *log.Logger
}

func NewKeepAliveWorker(targetURL string, logger *log.Logger) *KeepAliveWorker {
	return &KeepAliveWorker{
		TargetURL:    targetURL,
		Interval:     10 * time.Minute,
		ErrorBackoff: 60 * time.Second,
		Client:       &http.Client{Timeout: 30 * time.Second},
		Logger:       logger,
	}
}

func (kw *KeepAliveWorker) Start(ctx context.Context) {
	if kw.TargetURL == "" {
		return
	}

	kw.Logger.Printf("Keep-alive worker started, target %s", kw.TargetURL)

	for {
		wait := kw.Interval
		if err := kw.ping(ctx); err != nil {
			kw.Logger.Printf("Keep-alive ping failed: %v", err)
			wait = kw.ErrorBackoff
		}

		select {
		case <-ctx.Done():
			kw.Logger.Println("Keep-alive worker shutting down...")
			return
		case <-time.After(wait):
		}
	}
}

func (kw *KeepAliveWorker) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, kw.TargetURL, nil)
	if err != nil {
		return err
	}

	resp, err := kw.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	kw.Logger.Printf("Keep-alive ping ok (status %d)", resp.StatusCode)
	return nil
}
