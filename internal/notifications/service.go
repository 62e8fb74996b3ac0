package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"bdmenu/internal/config"
)

const userAgent = "bdmenu/0.1.0"

// Event identifies a run milestone.
type Event string

const (
	EventImageReady    Event = "image_ready"
	EventBurnCompleted Event = "burn_completed"
	EventRunFailed     Event = "run_failed"
	EventTest          Event = "test"
)

// Payload carries the run details rendered into a message.
type Payload struct {
	RunID string
	Video string
	ISO   string
	Drive string
	Err   error
}

// Service publishes run milestones.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService returns an ntfy-backed notifier, or a no-op one when no topic is
// configured.
func NewService(cfg *config.Config) Service {
	if cfg == nil || strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: strings.TrimSpace(cfg.Notifications.NtfyTopic),
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

func format(event Event, p Payload) (message, bool) {
	video := filepath.Base(p.Video)
	switch event {
	case EventImageReady:
		return message{
			title: "bdmenu - Disc Image Ready",
			body:  fmt.Sprintf("💿 %s is ready to burn: %s", video, p.ISO),
			tags:  []string{"bdmenu", "authoring", "completed"},
		}, true
	case EventBurnCompleted:
		return message{
			title:    "bdmenu - Burn Complete",
			body:     fmt.Sprintf("✅ Burned %s to %s", filepath.Base(p.ISO), p.Drive),
			tags:     []string{"bdmenu", "burn", "completed"},
			priority: "high",
		}, true
	case EventRunFailed:
		detail := "unknown error"
		if p.Err != nil {
			detail = p.Err.Error()
		}
		return message{
			title:    "bdmenu - Run Failed",
			body:     fmt.Sprintf("❌ %s failed: %s", video, detail),
			tags:     []string{"bdmenu", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title: "bdmenu - Test",
			body:  "🔔 Notifications are working",
			tags:  []string{"bdmenu", "test"},
		}, true
	default:
		return message{}, false
	}
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", msg.title)
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
