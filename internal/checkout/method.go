package checkout

import "github.com/shopspring/decimal"

// Method enumerates the accepted payment methods. Fiado is the store
// credit tab debited against the client account instead of settled at
// the counter.
type Method string

const (
	Cash       Method = "cash"
	CreditCard Method = "credit_card"
	DebitCard  Method = "debit_card"
	Pix        Method = "pix"
	Fiado      Method = "fiado"
)

func (m Method) Valid() bool {
	switch m {
	case Cash, CreditCard, DebitCard, Pix, Fiado:
		return true
	}
	return false
}

// Part is one (method, amount) contribution toward covering the total.
type Part struct {
	Method Method          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// State is the explicit checkout state machine:
// Collecting -> Confirming -> Succeeded, or Confirming -> Failed which
// returns to Collecting on the next mutation.
type State int

const (
	Idle State = iota
	Collecting
	Confirming
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	case Confirming:
		return "confirming"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}
