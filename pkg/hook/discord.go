package hook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kotrzina/gas-wizard/pkg/gwgp"
)

// Discord announces loaded prices to a Discord channel webhook
type Discord struct {
	hookURL string
	client  http.Client
}

func NewDiscord(hookURL string) *Discord {
	return &Discord{
		hookURL: hookURL,
		client: http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (d *Discord) SendSnapshot(snapshot *gwgp.Snapshot) error {
	message := fmt.Sprintf(
		"⛽	**Gas price predictions loaded:** %d cities (%s)",
		snapshot.Len(),
		snapshot.DateInfo(),
	)
	return d.sendWebhook(d.hookURL, message)
}

func (d *Discord) sendWebhook(url, message string) error {
	body := struct {
		Content string `json:"content"`
	}{
		Content: message,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not marshal data for Discord webhook")
	}
	data := bytes.NewBuffer(jsonData)

	resp, err := d.client.Post(url, "application/json", data)
	if err != nil {
		return fmt.Errorf("could not send Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("invalid response code from Discord webhook: %d", resp.StatusCode)
	}

	return nil
}
