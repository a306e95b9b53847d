package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Jaydot33/proppulse-mvp/pkg/models"
)

// Webhook sends prop alerts as formatted text messages to a configured
// webhook URL (Slack/Discord compatible payload shape).
type Webhook struct {
	webhookURL string
	httpClient *http.Client
}

// New creates a webhook notifier. url may be empty (not configured).
func New(url string) *Webhook {
	return &Webhook{
		webhookURL: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether a webhook URL is set
func (w *Webhook) Configured() bool {
	return w.webhookURL != ""
}

// SendAlert delivers a formatted prop alert. One attempt, no retry.
func (w *Webhook) SendAlert(ctx context.Context, alert models.AlertRequest) error {
	payload := map[string]interface{}{
		"text": w.formatMessage(alert),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	fmt.Printf("✓ alert sent: player=%s prop=%s\n", alert.Player, alert.Prop)

	return nil
}

// formatMessage renders an alert as a webhook text message
func (w *Webhook) formatMessage(alert models.AlertRequest) string {
	var sb strings.Builder

	badge := "🟢"
	if alert.RiskScore > 10 {
		badge = "🚨"
	}

	sb.WriteString(fmt.Sprintf("%s *PropPulse Alert* | %s\n\n", badge, alert.Player))
	sb.WriteString(fmt.Sprintf("*Prop:* %s\n", alert.Prop))
	sb.WriteString(fmt.Sprintf("*Line:* %.1f\n", alert.Line))
	sb.WriteString(fmt.Sprintf("*Risk Score:* %.1f%%", alert.RiskScore))

	return sb.String()
}
