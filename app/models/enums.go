package models

// PaymentStatus classifies how much of a student's expected fees have been paid.
type PaymentStatus string

const (
	FullyPaid     PaymentStatus = "fully_paid"
	PartiallyPaid PaymentStatus = "partially_paid"
	NotPaid       PaymentStatus = "not_paid"
)

// PaymentMethod defines the accepted payment channels.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodCheque       PaymentMethod = "cheque"
)
