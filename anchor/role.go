package anchor

import (
	"time"
)

const (
	// DefaultGateway is the public IPFS gateway linked from notifications.
	DefaultGateway = "https://ipfs.io/ipfs/"

	externalURL      = "https://julius.network"
	placeholderImage = "bafy_default_placeholder"
	syncDateLayout   = "2006-01-02T15:04:05.000Z07:00"
)

// Role is an on-chain entity whose metadata is anchored to IPFS.
type Role struct {
	ID       string `json:"id" mapstructure:"id" validate:"required"`
	Name     string `json:"name" mapstructure:"name" validate:"required"`
	ImageCID string `json:"image_cid,omitempty" mapstructure:"image_cid"`
}

// DefaultRoles returns the entities anchored when no role list is configured.
func DefaultRoles() []Role {
	return []Role{
		{ID: "001", Name: "Julius_Prime", ImageCID: "bafybeig..."},
		{ID: "002", Name: "Treasury_Bot", ImageCID: "bafybeic..."},
		{ID: "003", Name: "Bridge_Operator", ImageCID: "bafybeid..."},
	}
}

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Metadata is the ERC-721 style document pinned for a role.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ExternalURL string      `json:"external_url"`
	Attributes  []Attribute `json:"attributes"`
}

// NewMetadata builds the metadata document of r as of syncedAt.
func NewMetadata(r Role, syncedAt time.Time) Metadata {
	image := r.ImageCID
	if image == "" {
		image = placeholderImage
	}

	return Metadata{
		Name:        r.Name,
		Description: "Official Anchor Record for " + r.Name,
		Image:       "ipfs://" + image,
		ExternalURL: externalURL,
		Attributes: []Attribute{
			{TraitType: "Role", Value: r.Name},
			{TraitType: "ID", Value: r.ID},
			{TraitType: "Sync Date", Value: syncedAt.UTC().Format(syncDateLayout)},
			{TraitType: "Anchor Status", Value: "Verified"},
		},
	}
}
