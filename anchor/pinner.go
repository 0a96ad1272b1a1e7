package anchor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	jsonutils "github.com/julius-network/safeprop/internal/utils/json"
	"github.com/julius-network/safeprop/sdk"
)

// DefaultNFTStorageEndpoint is the nft.storage upload API.
const DefaultNFTStorageEndpoint = "https://api.nft.storage/upload"

// Pinner stores the metadata of a role on IPFS and returns its CID.
type Pinner interface {
	Pin(ctx context.Context, r Role) (string, error)
}

var (
	_ Pinner = (*NFTStoragePinner)(nil)
	_ Pinner = (*LocalPinner)(nil)
)

// NFTStoragePinner uploads role metadata to nft.storage.
type NFTStoragePinner struct {
	apiKey      string
	metadataDir string
	http        httpSettings
	now         func() time.Time
}

// NewNFTStoragePinner returns a pinner authenticating with apiKey. When metadataDir is set, every
// metadata document is also written there as <role id>.json before upload.
func NewNFTStoragePinner(apiKey, metadataDir string, opts ...HTTPOption) *NFTStoragePinner {
	return &NFTStoragePinner{
		apiKey:      apiKey,
		metadataDir: metadataDir,
		http:        newHTTPSettings(DefaultNFTStorageEndpoint, opts),
		now:         time.Now,
	}
}

type uploadResponse struct {
	Value struct {
		CID string `json:"cid"`
	} `json:"value"`
}

func (p *NFTStoragePinner) Pin(ctx context.Context, r Role) (string, error) {
	lggr := sdk.LoggerFrom(ctx)

	if p.apiKey == "" {
		return "", fmt.Errorf("nft.storage API key: %w", ErrNotConfigured)
	}

	body, err := marshalMetadata(r, p.now())
	if err != nil {
		return "", err
	}
	if p.metadataDir != "" {
		if err := writeMetadata(p.metadataDir, r, body); err != nil {
			return "", err
		}
	}

	lggr.Infof("Uploading metadata of %s to IPFS", r.Name)
	status, respBody, err := p.http.post(ctx, p.http.endpoint, body, map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	})
	if err != nil {
		return "", err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: %w", ErrPinFailed, NewStatusError("nft.storage", status, string(respBody)))
	}

	var resp uploadResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to parse upload response: %w", ErrPinFailed, err)
	}
	c, err := cid.Decode(resp.Value.CID)
	if err != nil {
		return "", fmt.Errorf("%w: invalid CID %q: %w", ErrPinFailed, resp.Value.CID, err)
	}
	lggr.Infof("Pinned %s at %s", r.Name, c)

	return c.String(), nil
}

// LocalPinner derives the CIDv1 (raw, sha2-256) of role metadata without uploading it. It backs
// dry runs of the anchor sync.
type LocalPinner struct {
	metadataDir string
	now         func() time.Time
}

// NewLocalPinner returns a LocalPinner, writing metadata documents under metadataDir when set.
func NewLocalPinner(metadataDir string) *LocalPinner {
	return &LocalPinner{metadataDir: metadataDir, now: time.Now}
}

func (p *LocalPinner) Pin(_ context.Context, r Role) (string, error) {
	body, err := marshalMetadata(r, p.now())
	if err != nil {
		return "", err
	}
	if p.metadataDir != "" {
		if err := writeMetadata(p.metadataDir, r, body); err != nil {
			return "", err
		}
	}

	return CIDv1RawSHA256(body)
}

// CIDv1RawSHA256 returns the CIDv1 string of data using the raw multicodec and a sha2-256
// multihash.
func CIDv1RawSHA256(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPinFailed, err)
	}

	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

func marshalMetadata(r Role, syncedAt time.Time) ([]byte, error) {
	b, err := json.Marshal(NewMetadata(r, syncedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata of %s: %w", r.Name, err)
	}

	return b, nil
}

func writeMetadata(dir string, r Role, body []byte) error {
	path := filepath.Join(dir, r.ID+".json")
	if err := jsonutils.WriteFile(path, json.RawMessage(body)); err != nil {
		return fmt.Errorf("failed to write metadata of %s: %w", r.Name, err)
	}

	return nil
}
