package sdkerrors

import (
	"fmt"
)

// InterfaceNotFoundError is returned when the build artifact holding a contract's ABI is missing.
type InterfaceNotFoundError struct {
	ContractName string
	Path         string
}

func (e *InterfaceNotFoundError) Error() string {
	return fmt.Sprintf("interface descriptor for %s not found: %s", e.ContractName, e.Path)
}

func NewInterfaceNotFoundError(contractName, path string) *InterfaceNotFoundError {
	return &InterfaceNotFoundError{ContractName: contractName, Path: path}
}

// MethodNotFoundError is returned when a contract interface does not expose the called method.
type MethodNotFoundError struct {
	ContractName string
	Method       string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("method %s not found in interface %s", e.Method, e.ContractName)
}

func NewMethodNotFoundError(contractName, method string) *MethodNotFoundError {
	return &MethodNotFoundError{ContractName: contractName, Method: method}
}

// EncodingError is returned when call arguments do not fit the method signature.
type EncodingError struct {
	ContractName string
	Method       string
	Err          error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s.%s: %v", e.ContractName, e.Method, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

func NewEncodingError(contractName, method string, err error) *EncodingError {
	return &EncodingError{ContractName: contractName, Method: method, Err: err}
}
