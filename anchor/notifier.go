package anchor

import (
	"context"
	"net/http"
	"strings"

	"github.com/julius-network/safeprop/sdk"
)

const (
	slackHost        = "hooks.slack.com"
	discordAPIPrefix = "discord.com/api"
)

// Link is a named URL appended to a notification.
type Link struct {
	Name string
	URL  string
}

// Notifier delivers a sync notification to a chat platform.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, message string, links []Link) error
}

var (
	_ Notifier = (*SlackNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
)

// FormatMessage renders message and links as the markdown body shared by every platform.
func FormatMessage(message string, links []Link) string {
	var b strings.Builder
	b.WriteString("**⚓ Julius Anchor Update**\n")
	b.WriteString(message)
	b.WriteString("\n")
	for _, l := range links {
		b.WriteString("- " + l.Name + ": " + l.URL + "\n")
	}

	return b.String()
}

// SlackNotifier posts to a Slack incoming webhook.
type SlackNotifier struct {
	webhook string
	http    httpSettings
}

func NewSlackNotifier(webhook string, opts ...HTTPOption) *SlackNotifier {
	return &SlackNotifier{webhook: webhook, http: newHTTPSettings(webhook, opts)}
}

func (n *SlackNotifier) Name() string { return "slack" }

// Notify posts the message using Slack's single asterisk bold syntax.
func (n *SlackNotifier) Notify(ctx context.Context, message string, links []Link) error {
	text := strings.ReplaceAll(FormatMessage(message, links), "**", "*")

	return postWebhook(ctx, n.http, n.Name(), map[string]string{"text": text})
}

// DiscordNotifier posts to a Discord webhook.
type DiscordNotifier struct {
	webhook string
	http    httpSettings
}

func NewDiscordNotifier(webhook string, opts ...HTTPOption) *DiscordNotifier {
	return &DiscordNotifier{webhook: webhook, http: newHTTPSettings(webhook, opts)}
}

func (n *DiscordNotifier) Name() string { return "discord" }

func (n *DiscordNotifier) Notify(ctx context.Context, message string, links []Link) error {
	return postWebhook(ctx, n.http, n.Name(), map[string]string{"content": FormatMessage(message, links)})
}

func postWebhook(ctx context.Context, s httpSettings, service string, payload map[string]string) error {
	status, body, err := s.post(ctx, s.endpoint, payload, nil)
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return NewStatusError(service, status, string(body))
	}

	return nil
}

// NotifiersFromConfig returns a notifier for every webhook of cfg that points at its platform.
// Webhooks on any other host are ignored.
func NotifiersFromConfig(cfg Config, opts ...HTTPOption) []Notifier {
	var notifiers []Notifier
	if strings.Contains(cfg.SlackWebhook, slackHost) {
		notifiers = append(notifiers, NewSlackNotifier(cfg.SlackWebhook, opts...))
	}
	if strings.Contains(cfg.DiscordWebhook, discordAPIPrefix) {
		notifiers = append(notifiers, NewDiscordNotifier(cfg.DiscordWebhook, opts...))
	}

	return notifiers
}

// Broadcast sends the notification to every notifier and returns how many accepted it. A failing
// platform is logged and does not stop the others.
func Broadcast(ctx context.Context, notifiers []Notifier, message string, links []Link) int {
	lggr := sdk.LoggerFrom(ctx)

	sent := 0
	for _, n := range notifiers {
		if err := n.Notify(ctx, message, links); err != nil {
			lggr.Errorf("Failed to notify %s: %v", n.Name(), err)
			continue
		}
		lggr.Infof("Notification sent to %s", n.Name())
		sent++
	}

	return sent
}
