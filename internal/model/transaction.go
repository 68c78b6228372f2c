package model

// TransactionType enumerates the kinds of historical portfolio events.
type TransactionType string

const (
	TransactionBuy   TransactionType = "BUY"
	TransactionSell  TransactionType = "SELL"
	TransactionYield TransactionType = "YIELD"
)

// Transaction is an immutable historical portfolio event.
// Date is expressed in unix milliseconds.
type Transaction struct {
	ID       string          `json:"id"`
	Date     int64           `json:"date"`
	Type     TransactionType `json:"type"`
	Asset    string          `json:"asset"`
	Amount   float64         `json:"amount"`
	ValueUSD float64         `json:"valueUSD"`
}
