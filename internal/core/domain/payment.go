package domain

import "time"

// PaymentRecord is one ledger entry for a paid submission. The ledger is
// append-only and keyed on SubmissionID: at most one record ever exists per
// submission.
type PaymentRecord struct {
	ID           string
	SubmissionID string
	Amount       int64
	Currency     string
	TxRef        string
	CreatedAt    time.Time
}
