package dto

import (
	"strings"

	"skynest/internal/domains/payment/model"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

// NewReference builds the receipt code, e.g. PAY-7C21E09A.
func NewReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")

	return "PAY-" + strings.ToUpper(raw[:8])
}

type CreatePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash card transfer"`
}

func (c *CreatePaymentRequest) ToModel(bookingID, user string) model.Payment {
	paidAt := timezone.Format(timezone.Now(), constant.DateFormat)

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Amount:    c.Amount,
		Method:    c.Method,
		Status:    constant.PaymentStatusCompleted,
		Reference: NewReference(),
		PaidAt:    &paidAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
	PaidAt    string  `json:"paid_at,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Status = model.Status
	r.Reference = model.Reference

	if model.PaidAt != nil {
		r.PaidAt = *model.PaidAt
	}

	r.Metadata.FromModel(model.Metadata)
}

// FolioResponse is the running bill for one booking: room total, delivered
// service charges, what has been paid, and what remains.
type FolioResponse struct {
	BookingID      string            `json:"booking_id"`
	RoomTotal      float64           `json:"room_total"`
	ServiceCharges float64           `json:"service_charges"`
	Paid           float64           `json:"paid"`
	Outstanding    float64           `json:"outstanding"`
	Payments       []PaymentResponse `json:"payments"`
}

func (r *FolioResponse) FromModels(bookingID string, roomTotal, charges, paid float64, models []model.Payment) {
	r.BookingID = bookingID
	r.RoomTotal = roomTotal
	r.ServiceCharges = charges
	r.Paid = paid

	r.Outstanding = roomTotal + charges - paid
	if r.Outstanding < 0 {
		r.Outstanding = 0
	}

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
