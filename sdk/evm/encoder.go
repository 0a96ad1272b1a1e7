package evm

import (
	"encoding/json"

	abiUtils "github.com/julius-network/safeprop/internal/utils/abi"
	sdkerrors "github.com/julius-network/safeprop/sdk/errors"
)

const (
	MethodMintTo   = "mintTo"
	MethodRegister = "register"
)

// Encode packs a call to method with positional args. The argument count must match the method
// signature exactly and every value must be coercible to its declared type.
func (i *Interface) Encode(method string, args ...any) ([]byte, error) {
	m, ok := i.ABI.Methods[method]
	if !ok {
		return nil, sdkerrors.NewMethodNotFoundError(i.ContractName, method)
	}

	values, err := abiUtils.CoerceArgs(m.Inputs, args...)
	if err != nil {
		return nil, sdkerrors.NewEncodingError(i.ContractName, method, err)
	}

	data, err := i.ABI.Pack(method, values...)
	if err != nil {
		return nil, sdkerrors.NewEncodingError(i.ContractName, method, err)
	}

	return data, nil
}

// EncodeMintTo encodes mintTo(recipient, tokenId, metadataUri).
func EncodeMintTo(token *Interface, recipient string, tokenID json.Number, metadataURI string) ([]byte, error) {
	return token.Encode(MethodMintTo, recipient, tokenID, metadataURI)
}

// EncodeRegister encodes register(juliusId, role, metadataUri, wallet).
func EncodeRegister(registry *Interface, juliusID, role, metadataURI, wallet string) ([]byte, error) {
	return registry.Encode(MethodRegister, juliusID, role, metadataURI, wallet)
}
