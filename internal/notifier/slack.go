package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Houeta/lot-watch/internal/models"
)

// Slack posts new-vehicle alerts to a Slack incoming webhook.
type Slack struct {
	log        *slog.Logger
	client     *http.Client
	webhookURL string
}

func NewSlack(log *slog.Logger, webhookURL string) *Slack {
	return &Slack{log: log, webhookURL: webhookURL, client: http.DefaultClient}
}

// Webhook message shapes, per the Slack attachments API.
type slackMessage struct {
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Fallback  string       `json:"fallback"`
	Pretext   string       `json:"pretext"`
	Text      string       `json:"text"`
	Title     string       `json:"title"`
	TitleLink string       `json:"title_link"`
	Fields    []slackField `json:"fields"`
	ImageURL  string       `json:"image_url"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

func (s *Slack) Notify(ctx context.Context, vehicle models.Vehicle) error {
	const opn = "notifier.Slack.Notify"

	payload, err := json.Marshal(buildSlackMessage(vehicle))
	if err != nil {
		return fmt.Errorf("%s: failed to marshal payload: %w", opn, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", opn, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to post to webhook: %w", opn, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status code error: [%d] %s", opn, resp.StatusCode, resp.Status)
	}

	s.log.DebugContext(ctx, "Sent Slack notification", "stock_number", vehicle.StockNumber)

	return nil
}

func buildSlackMessage(v models.Vehicle) slackMessage {
	return slackMessage{
		Attachments: []slackAttachment{
			{
				Fallback:  fmt.Sprintf("A new %s %s %s found!", v.Year, v.Make, v.Model),
				Text:      "New vehicle found!",
				Title:     fmt.Sprintf("%s %s %s %s - %s", v.Year, v.Make, v.Model, v.Trim, v.StockNumber),
				TitleLink: v.DetailURL,
				Fields: []slackField{
					{Title: "Price", Value: v.Price},
					{Title: "Mileage", Value: v.Mileage},
					{Title: "Engine", Value: v.Engine},
					{Title: "Transmission", Value: v.Transmission},
					{Title: "Exterior", Value: v.ExteriorColor},
					{Title: "Interior", Value: v.InteriorColor},
				},
				ImageURL: v.ImageURL,
			},
		},
	}
}
