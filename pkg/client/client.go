// Package client provides the Discord webhook client used to publish harness reports.
package client

import (
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/webhook"

	"github.com/norio-nomura/uniqview/pkg/options"
)

// ErrNoWebhook is returned by New when the options configure no webhook.
var ErrNoWebhook = errors.New("no Discord webhook configured")

// New creates a webhook client from the URL in o, or from its webhook ID and token.
func New(o *options.Options) (webhook.Client, error) {
	switch {
	case o.DiscordWebhookURL != "":
		c, err := webhook.NewWithURL(o.DiscordWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook client: %w", err)
		}
		return c, nil
	case o.DiscordWebhookID != 0:
		return webhook.New(o.DiscordWebhookID, o.DiscordWebhookToken), nil
	default:
		return nil, ErrNoWebhook
	}
}
