package evm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	geth_abi "github.com/ethereum/go-ethereum/accounts/abi"

	sdkerrors "github.com/julius-network/safeprop/sdk/errors"
)

// Interface is the ABI of a named contract, used to encode and decode calls to it.
type Interface struct {
	ContractName string
	ABI          geth_abi.ABI
}

// artifact is the subset of a Hardhat build artifact we read.
type artifact struct {
	ABI json.RawMessage `json:"abi"`
}

// ArtifactPath returns where Hardhat writes the artifact of contractName under artifactsDir.
func ArtifactPath(artifactsDir, contractName string) string {
	return filepath.Join(artifactsDir, "contracts", contractName+".sol", contractName+".json")
}

// LoadInterface reads the artifact of contractName from artifactsDir.
func LoadInterface(artifactsDir, contractName string) (*Interface, error) {
	path := ArtifactPath(artifactsDir, contractName)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sdkerrors.NewInterfaceNotFoundError(contractName, path)
		}

		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}

	return NewInterface(contractName, a.ABI)
}

// NewInterface parses a JSON ABI.
func NewInterface(contractName string, abiJSON []byte) (*Interface, error) {
	parsed, err := geth_abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi of %s: %w", contractName, err)
	}

	return &Interface{ContractName: contractName, ABI: parsed}, nil
}

// LoadInterfaces loads the artifacts of every named contract, failing on the first one missing.
func LoadInterfaces(artifactsDir string, contractNames ...string) (map[string]*Interface, error) {
	out := make(map[string]*Interface, len(contractNames))
	for _, name := range contractNames {
		iface, err := LoadInterface(artifactsDir, name)
		if err != nil {
			return nil, err
		}
		out[name] = iface
	}

	return out, nil
}
