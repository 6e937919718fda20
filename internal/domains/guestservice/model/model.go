package model

import "skynest/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldActive      = "active"
)

// Service is a chargeable guest offering from the catalog (laundry, spa,
// airport transfer).
type Service struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Active      bool    `db:"active"`
	model.Metadata
}

const (
	RequestTableName  = "service_requests"
	RequestEntityName = "service_request"

	RequestFieldID         = "id"
	RequestFieldBookingID  = "booking_id"
	RequestFieldServiceID  = "service_id"
	RequestFieldGuestID    = "guest_id"
	RequestFieldQuantity   = "quantity"
	RequestFieldCharge     = "charge"
	RequestFieldStatus     = "status"
	RequestFieldNotes      = "notes"
	RequestFieldAssigneeID = "assignee_id"
)

// Request charge is captured at order time so later catalog price changes do
// not move an existing bill.
type Request struct {
	ID         string  `db:"id"`
	BookingID  string  `db:"booking_id"`
	ServiceID  string  `db:"service_id"`
	GuestID    string  `db:"guest_id"`
	Quantity   int     `db:"quantity"`
	Charge     float64 `db:"charge"`
	Status     string  `db:"status"`
	Notes      string  `db:"notes"`
	AssigneeID *string `db:"assignee_id"`
	model.Metadata
}
