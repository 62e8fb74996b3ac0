package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bdmenu/internal/config"
	"bdmenu/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventImageReady, notifications.Payload{Video: "/m/a.mkv"}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := notifications.NewService(nil).Publish(context.Background(), notifications.EventTest, notifications.Payload{}); err != nil {
		t.Fatalf("expected nil config to yield noop notifier, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		event          notifications.Event
		payload        notifications.Payload
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name:          "image ready",
			event:         notifications.EventImageReady,
			payload:       notifications.Payload{Video: "/media/Holiday.mkv", ISO: "/media/BDMV_MENU.iso"},
			expectTitle:   "bdmenu - Disc Image Ready",
			expectMessage: "💿 Holiday.mkv is ready to burn: /media/BDMV_MENU.iso",
			expectTags:    "bdmenu,authoring,completed",
		},
		{
			name:           "burn completed",
			event:          notifications.EventBurnCompleted,
			payload:        notifications.Payload{ISO: "/media/BDMV_MENU.iso", Drive: "E:"},
			expectTitle:    "bdmenu - Burn Complete",
			expectMessage:  "✅ Burned BDMV_MENU.iso to E:",
			expectTags:     "bdmenu,burn,completed",
			expectPriority: "high",
		},
		{
			name:           "run failed",
			event:          notifications.EventRunFailed,
			payload:        notifications.Payload{Video: "/media/Holiday.mkv", Err: errors.New("ffmpeg exited with code 1")},
			expectTitle:    "bdmenu - Run Failed",
			expectMessage:  "❌ Holiday.mkv failed: ffmpeg exited with code 1",
			expectTags:     "bdmenu,error,alert",
			expectPriority: "high",
		},
		{
			name:          "test",
			event:         notifications.EventTest,
			expectTitle:   "bdmenu - Test",
			expectMessage: "🔔 Notifications are working",
			expectTags:    "bdmenu,test",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("read body: %v", err)
				}
				captured.body = string(body)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeoutSeconds = 5

			svc := notifications.NewService(&cfg)
			if err := svc.Publish(context.Background(), tc.event, tc.payload); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic is reserved", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	err := notifications.NewService(&cfg).Publish(context.Background(), notifications.EventTest, notifications.Payload{})
	if err == nil || !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "topic is reserved") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestNtfyServiceIgnoresUnknownEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call for unknown event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	if err := notifications.NewService(&cfg).Publish(context.Background(), notifications.Event("queued"), notifications.Payload{}); err != nil {
		t.Fatalf("expected no error for unknown event, got %v", err)
	}
}
