package anchor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/julius-network/safeprop/sdk"
)

var testLinks = []Link{
	{Name: "GitHub Log", URL: "https://github.com/julius/anchor/issues/1"},
	{Name: "IPFS Gateway", URL: DefaultGateway},
}

func TestFormatMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"**⚓ Julius Anchor Update**\nsynced\n"+
			"- GitHub Log: https://github.com/julius/anchor/issues/1\n"+
			"- IPFS Gateway: https://ipfs.io/ipfs/\n",
		FormatMessage("synced", testLinks))
	assert.Equal(t, "**⚓ Julius Anchor Update**\nsynced\n", FormatMessage("synced", nil))
}

func webhookServer(t *testing.T, status int) (*httptest.Server, <-chan map[string]string) {
	t.Helper()

	payloads := make(chan map[string]string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var payload map[string]string
		assert.NoError(t, json.Unmarshal(b, &payload))
		payloads <- payload

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server, payloads
}

func TestSlackNotifier_Notify(t *testing.T) {
	t.Parallel()

	server, payloads := webhookServer(t, http.StatusOK)

	require.NoError(t, NewSlackNotifier(server.URL).Notify(context.Background(), "synced", testLinks))
	assert.Equal(t, map[string]string{
		"text": "*⚓ Julius Anchor Update*\nsynced\n" +
			"- GitHub Log: https://github.com/julius/anchor/issues/1\n" +
			"- IPFS Gateway: https://ipfs.io/ipfs/\n",
	}, <-payloads)
}

func TestDiscordNotifier_Notify(t *testing.T) {
	t.Parallel()

	server, payloads := webhookServer(t, http.StatusNoContent)

	require.NoError(t, NewDiscordNotifier(server.URL).Notify(context.Background(), "synced", testLinks))
	assert.Equal(t, map[string]string{"content": FormatMessage("synced", testLinks)}, <-payloads)
}

func TestNotifier_Notify_Rejected(t *testing.T) {
	t.Parallel()

	server, _ := webhookServer(t, http.StatusForbidden)

	err := NewDiscordNotifier(server.URL).Notify(context.Background(), "synced", nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "discord", statusErr.Service)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestNotifiersFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      Config
		wantNames []string
	}{
		{name: "none", give: Config{}},
		{
			name: "both",
			give: Config{
				SlackWebhook:   "https://hooks.slack.com/services/T/B/X",
				DiscordWebhook: "https://discord.com/api/webhooks/1/abc",
			},
			wantNames: []string{"slack", "discord"},
		},
		{
			name: "foreign hosts are ignored",
			give: Config{
				SlackWebhook:   "https://example.com/hooks",
				DiscordWebhook: "https://discord.com/channels/1",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var names []string
			for _, n := range NotifiersFromConfig(tt.give) {
				names = append(names, n.Name())
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

type fakeNotifier struct {
	name     string
	err      error
	messages []string
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(_ context.Context, message string, links []Link) error {
	f.messages = append(f.messages, FormatMessage(message, links))

	return f.err
}

func TestBroadcast(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := sdk.WithLogger(context.Background(), zap.New(core).Sugar())

	failing := &fakeNotifier{name: "slack", err: errors.New("timeout")}
	ok := &fakeNotifier{name: "discord"}

	sent := Broadcast(ctx, []Notifier{failing, ok}, "synced", testLinks)

	assert.Equal(t, 1, sent)
	assert.Len(t, failing.messages, 1)
	assert.Len(t, ok.messages, 1)
	assert.Equal(t, 1, logs.FilterMessage("Failed to notify slack: timeout").Len())
}
