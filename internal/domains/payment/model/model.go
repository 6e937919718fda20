package model

import "skynest/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldReference = "reference"
	FieldPaidAt    = "paid_at"
)

const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

type Payment struct {
	ID        string  `db:"id"`
	BookingID string  `db:"booking_id"`
	Amount    float64 `db:"amount"`
	Method    string  `db:"method"`
	Status    string  `db:"status"`
	Reference string  `db:"reference"`
	PaidAt    *string `db:"paid_at"`
	model.Metadata
}
