package types

// Operation is the Safe operation type of a multisig transaction.
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

// SafeTransaction is the minimal body accepted by the Safe Transaction Service when proposing a
// multisig transaction.
type SafeTransaction struct {
	To        string    `json:"to"`
	Value     string    `json:"value"`
	Data      string    `json:"data"`
	Operation Operation `json:"operation"`
	Safe      string    `json:"safe"`
}

// SafeTransactionFrom builds the request body for p, filling the defaults for value and operation.
func SafeTransactionFrom(p Proposal, safe string) SafeTransaction {
	tx := SafeTransaction{
		To:        p.To,
		Value:     p.Value,
		Data:      p.Data.String(),
		Operation: OperationCall,
		Safe:      safe,
	}
	if tx.Value == "" {
		tx.Value = ZeroValue
	}
	if p.Operation != nil {
		tx.Operation = *p.Operation
	}

	return tx
}
