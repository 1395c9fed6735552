package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookCluster is a minimal ClusterHandle that posts the command's
// follow-up message to the chat gateway's interaction-webhook URL. The
// gateway client itself (slash-command registration, ack, session
// lifecycle) is an external collaborator per scope; this is the one REST
// call the core needs to make back into it.
type WebhookCluster struct {
	BaseURL string
	Client  *http.Client
}

func NewWebhookCluster(baseURL string) *WebhookCluster {
	return &WebhookCluster{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *WebhookCluster) RespondToInteraction(interactionToken, message string) error {
	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/webhooks/callback/%s", c.BaseURL, interactionToken)
	resp, err := c.Client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("commands: interaction follow-up failed with status %d", resp.StatusCode)
	}
	return nil
}
