package safe

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TxReferenceField names the response field a transaction hash was taken from. Different
// deployments of the transaction service report the hash under different names.
type TxReferenceField string

const (
	FieldSafeTxHash      TxReferenceField = "safeTxHash"
	FieldTransactionHash TxReferenceField = "transactionHash"
	FieldTxHash          TxReferenceField = "txHash"
)

// txReferencePriority is the order in which response fields are consulted; the first non-empty
// string wins.
var txReferencePriority = []TxReferenceField{FieldSafeTxHash, FieldTransactionHash, FieldTxHash}

// TxReference is the transaction hash reported by the service, tagged with the field it came
// from. The zero value means the response carried no hash.
type TxReference struct {
	Field TxReferenceField
	Hash  string
}

func (r TxReference) IsZero() bool {
	return r.Hash == ""
}

// ProposeResponse is a successful reply to a propose request.
type ProposeResponse struct {
	Reference TxReference
	// TxID is the response's txId, falling back to the reference hash.
	TxID string
	// Raw is the response body as received, or nil when the body was empty.
	Raw json.RawMessage
}

// ParseProposeResponse decodes a 2xx response body. An empty body is accepted and yields a
// response without a reference.
func ParseProposeResponse(body []byte) (*ProposeResponse, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &ProposeResponse{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse service response: %w", err)
	}

	ref := ResolveTxReference(fields)
	txID := stringField(fields, "txId")
	if txID == "" {
		txID = ref.Hash
	}

	return &ProposeResponse{
		Reference: ref,
		TxID:      txID,
		Raw:       json.RawMessage(body),
	}, nil
}

// ResolveTxReference returns the first non-empty hash found in fields, in txReferencePriority
// order.
func ResolveTxReference(fields map[string]json.RawMessage) TxReference {
	for _, f := range txReferencePriority {
		if h := stringField(fields, string(f)); h != "" {
			return TxReference{Field: f, Hash: h}
		}
	}

	return TxReference{}
}

// stringField returns fields[name] when it is a JSON string, and "" otherwise.
func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}
