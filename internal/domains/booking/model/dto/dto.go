package dto

import (
	"strings"
	"time"

	"skynest/internal/domains/booking/model"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

// NewReference builds the short human-facing booking code, e.g. BK-3F9A2C1B.
func NewReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")

	return "BK-" + strings.ToUpper(raw[:8])
}

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required,uuid"`
	CheckIn    string `json:"check_in"    validate:"required,dateonly"`
	CheckOut   string `json:"check_out"   validate:"required,dateonly"`
	GuestCount int    `json:"guest_count" validate:"required,gt=0"`
	Notes      string `json:"notes"       validate:"omitempty,max=500"`
}

// Dates parses the stay range. Validation already guarantees the layout.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyLayout, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = time.Parse(constant.DateOnlyLayout, c.CheckOut)

	return checkIn, checkOut, err
}

func (c *CreateBookingRequest) ToModel(guestID, branchID string, checkIn, checkOut time.Time, totalAmount float64) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		Reference:   NewReference(),
		BranchID:    branchID,
		RoomID:      c.RoomID,
		GuestID:     guestID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestCount:  c.GuestCount,
		TotalAmount: totalAmount,
		Status:      constant.BookingStatusPending,
		Notes:       c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

type BookingResponse struct {
	ID          string  `json:"id"`
	Reference   string  `json:"reference"`
	BranchID    string  `json:"branch_id"`
	RoomID      string  `json:"room_id"`
	GuestID     string  `json:"guest_id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	GuestCount  int     `json:"guest_count"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Reference = model.Reference
	r.BranchID = model.BranchID
	r.RoomID = model.RoomID
	r.GuestID = model.GuestID
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyLayout)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyLayout)
	r.Nights = model.Nights()
	r.GuestCount = model.GuestCount
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	CheckOut string `json:"check_out" validate:"required,dateonly"`
}

func (a *AvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyLayout, a.CheckIn)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = time.Parse(constant.DateOnlyLayout, a.CheckOut)

	return checkIn, checkOut, err
}

type AvailabilityItem struct {
	RoomTypeID     string  `json:"room_type_id"`
	RoomTypeName   string  `json:"room_type_name"`
	BranchID       string  `json:"branch_id"`
	BasePrice      float64 `json:"base_price"`
	Capacity       int     `json:"capacity"`
	AvailableRooms int     `json:"available_rooms"`
	TotalForStay   float64 `json:"total_for_stay"`
}

type AvailabilityResponse struct {
	CheckIn   string             `json:"check_in"`
	CheckOut  string             `json:"check_out"`
	Nights    int                `json:"nights"`
	RoomTypes []AvailabilityItem `json:"room_types"`
}

func (r *AvailabilityResponse) FromRows(rows []model.AvailabilityRow, checkIn, checkOut time.Time) {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)

	r.CheckIn = checkIn.Format(constant.DateOnlyLayout)
	r.CheckOut = checkOut.Format(constant.DateOnlyLayout)
	r.Nights = nights

	r.RoomTypes = make([]AvailabilityItem, len(rows))
	for i, row := range rows {
		r.RoomTypes[i] = AvailabilityItem{
			RoomTypeID:     row.RoomTypeID,
			RoomTypeName:   row.RoomTypeName,
			BranchID:       row.BranchID,
			BasePrice:      row.BasePrice,
			Capacity:       row.Capacity,
			AvailableRooms: row.AvailableRooms,
			TotalForStay:   row.BasePrice * float64(nights),
		}
	}
}

type RoomAvailabilityRequest struct {
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	CheckOut string `json:"check_out" validate:"required,dateonly"`
}

func (a *RoomAvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyLayout, a.CheckIn)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = time.Parse(constant.DateOnlyLayout, a.CheckOut)

	return checkIn, checkOut, err
}

// RoomAvailabilityResponse answers the single-room question: is this exact
// room free for the range, at what price, and if not, which bookings are in
// the way.
type RoomAvailabilityResponse struct {
	RoomID      string            `json:"room_id"`
	CheckIn     string            `json:"check_in"`
	CheckOut    string            `json:"check_out"`
	Nights      int               `json:"nights"`
	Available   bool              `json:"available"`
	TotalAmount float64           `json:"total_amount"`
	Conflicts   []BookingResponse `json:"conflicts"`
}

func (r *RoomAvailabilityResponse) FromModels(roomID string, checkIn, checkOut time.Time, basePrice float64, conflicts []model.Booking) {
	r.RoomID = roomID
	r.CheckIn = checkIn.Format(constant.DateOnlyLayout)
	r.CheckOut = checkOut.Format(constant.DateOnlyLayout)
	r.Nights = int(checkOut.Sub(checkIn).Hours() / 24)
	r.Available = len(conflicts) == 0
	r.TotalAmount = basePrice * float64(r.Nights)

	r.Conflicts = make([]BookingResponse, len(conflicts))
	for i, mod := range conflicts {
		r.Conflicts[i].FromModel(mod)
	}
}

type UpdateBookingStatusRequest struct {
	Status string `db:"status"`
}
