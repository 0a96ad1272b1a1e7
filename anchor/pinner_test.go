package anchor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRole = Role{ID: "001", Name: "Julius_Prime", ImageCID: "bafyimage"}

func fixedClock() time.Time { return syncTime }

func TestNFTStoragePinner_Pin(t *testing.T) {
	t.Parallel()

	wantCID, err := CIDv1RawSHA256([]byte("pinned"))
	require.NoError(t, err)

	var gotBody Metadata
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(b, &gotBody))

		_, _ = w.Write([]byte(`{"ok":true,"value":{"cid":"` + wantCID + `"}}`))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	p := NewNFTStoragePinner("secret", dir, WithEndpoint(server.URL+"/upload"))
	p.now = fixedClock

	got, err := p.Pin(context.Background(), testRole)
	require.NoError(t, err)
	assert.Equal(t, wantCID, got)
	assert.Equal(t, NewMetadata(testRole, syncTime), gotBody)

	written, err := os.ReadFile(filepath.Join(dir, "001.json"))
	require.NoError(t, err)
	var onDisk Metadata
	require.NoError(t, json.Unmarshal(written, &onDisk))
	assert.Equal(t, gotBody, onDisk)
}

func TestNFTStoragePinner_Pin_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveKey    string
		giveStatus int
		giveBody   string
		wantErr    error
		wantStatus string
	}{
		{
			name:       "missing key",
			wantErr:    ErrNotConfigured,
			wantStatus: StatusConfigurationError,
		},
		{
			name:       "upload rejected",
			giveKey:    "secret",
			giveStatus: http.StatusUnauthorized,
			giveBody:   `{"ok":false}`,
			wantErr:    ErrPinFailed,
			wantStatus: StatusHashFailed,
		},
		{
			name:       "invalid cid",
			giveKey:    "secret",
			giveStatus: http.StatusOK,
			giveBody:   `{"ok":true,"value":{"cid":"not-a-cid"}}`,
			wantErr:    ErrPinFailed,
			wantStatus: StatusHashFailed,
		},
		{
			name:       "malformed response",
			giveKey:    "secret",
			giveStatus: http.StatusOK,
			giveBody:   `[`,
			wantErr:    ErrPinFailed,
			wantStatus: StatusHashFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.giveStatus)
				_, _ = w.Write([]byte(tt.giveBody))
			}))
			t.Cleanup(server.Close)

			p := NewNFTStoragePinner(tt.giveKey, "", WithEndpoint(server.URL))

			_, err := p.Pin(context.Background(), testRole)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantStatus, PinStatus(err))
		})
	}
}

func TestNFTStoragePinner_Pin_ConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	p := NewNFTStoragePinner("secret", "", WithEndpoint(endpoint))

	_, err := p.Pin(context.Background(), testRole)
	require.ErrorIs(t, err, ErrConnection)
	assert.Equal(t, StatusConnectionError, PinStatus(err))
}

func TestLocalPinner_Pin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewLocalPinner(dir)
	p.now = fixedClock

	got, err := p.Pin(context.Background(), testRole)
	require.NoError(t, err)

	body, err := json.Marshal(NewMetadata(testRole, syncTime))
	require.NoError(t, err)

	c, err := cid.Decode(got)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.Version())
	assert.Equal(t, uint64(cid.Raw), c.Type())

	sum, err := multihash.Sum(body, multihash.SHA2_256, -1)
	require.NoError(t, err)
	assert.Equal(t, sum, c.Hash())

	again, err := p.Pin(context.Background(), testRole)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.FileExists(t, filepath.Join(dir, "001.json"))
}
