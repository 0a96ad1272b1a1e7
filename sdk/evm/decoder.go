package evm

import (
	"encoding/json"
	"fmt"

	geth_abi "github.com/ethereum/go-ethereum/accounts/abi"
)

type DecodedCall struct {
	FunctionName string
	InputArgs    []any
	InputKeys    geth_abi.Arguments
}

// Decode parses call data, selector included, against the interface.
func (i *Interface) Decode(data []byte) (*DecodedCall, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("call data too short: %d bytes", len(data))
	}

	method, err := i.ABI.MethodById(data[:4])
	if err != nil {
		return nil, err
	}

	inputs, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}

	return &DecodedCall{
		FunctionName: method.Name,
		InputArgs:    inputs,
		InputKeys:    method.Inputs,
	}, nil
}

func (d *DecodedCall) String() (string, string, error) {
	// e.g. {"recipient": "0x..", "tokenId": 7}
	inputMap := make(map[string]any)
	for i, key := range d.InputKeys {
		inputMap[key.Name] = d.InputArgs[i]
	}

	byteMap, err := json.MarshalIndent(inputMap, "", "  ")
	if err != nil {
		return "", "", err
	}

	return d.FunctionName, string(byteMap), nil
}
