package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Note: ABIs mirror the deployed JuliusToken and JuliusRegistry contracts and should only be used
// for testing purposes.
const (
	JuliusTokenABI = `[
  {"type":"function","name":"mintTo","stateMutability":"nonpayable","inputs":[
    {"name":"recipient","type":"address"},
    {"name":"tokenId","type":"uint256"},
    {"name":"metadataUri","type":"string"}],"outputs":[]}
]`

	JuliusRegistryABI = `[
  {"type":"function","name":"register","stateMutability":"nonpayable","inputs":[
    {"name":"juliusId","type":"string"},
    {"name":"role","type":"string"},
    {"name":"metadataUri","type":"string"},
    {"name":"wallet","type":"address"}],"outputs":[]}
]`
)

// WriteArtifact writes a Hardhat style artifact for contractName under dir and returns its path.
func WriteArtifact(t *testing.T, dir, contractName, abiJSON string) string {
	t.Helper()

	path := filepath.Join(dir, "contracts", contractName+".sol", contractName+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	content := `{"contractName":"` + contractName + `","abi":` + abiJSON + `,"bytecode":"0x"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// WriteJuliusArtifacts writes the JuliusToken and JuliusRegistry artifacts into a fresh temporary
// directory and returns it.
func WriteJuliusArtifacts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteArtifact(t, dir, "JuliusToken", JuliusTokenABI)
	WriteArtifact(t, dir, "JuliusRegistry", JuliusRegistryABI)

	return dir
}
