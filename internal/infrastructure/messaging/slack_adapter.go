package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pacerhq/pacer/pkg/domain/messaging"
	"github.com/pacerhq/pacer/pkg/domain/notification"
)

// SlackAdapter sends notifications to a Slack incoming webhook URL.
type SlackAdapter struct {
	config messaging.AdapterConfig
	client *http.Client
}

// NewSlackAdapter creates a Slack adapter from config.
func NewSlackAdapter(config messaging.AdapterConfig) *SlackAdapter {
	return &SlackAdapter{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *SlackAdapter) Name() string { return a.config.Name }
func (a *SlackAdapter) Type() string { return "slack" }

func (a *SlackAdapter) Send(ctx context.Context, n notification.Notification) error {
	text := formatSlackMessage(n)

	payload := map[string]interface{}{
		"text": text,
		"blocks": []map[string]interface{}{
			{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": text,
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("send to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}

	return nil
}

func formatSlackMessage(n notification.Notification) string {
	switch n.Kind {
	case notification.KindAdaptationSuggested:
		return fmt.Sprintf(":bulb: %s\n%s", n.Title, n.Body)
	case notification.KindAdaptationApplied:
		return fmt.Sprintf(":white_check_mark: %s\n%s", n.Title, n.Body)
	case notification.KindAbandonmentRisk:
		return fmt.Sprintf(":wave: %s\n%s", n.Title, n.Body)
	default:
		return fmt.Sprintf("Pacer: %s", n.Title)
	}
}
