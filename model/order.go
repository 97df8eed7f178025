package model

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/errs"
	"encoding/json"
	"fmt"
	"time"
)

const PurchaseTimestampLayout = "2006-01-02T15:04:05.000000Z"

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

type TicketSelection struct {
	SeatClass       Optional[SeatValue] `json:"seatClass,omitzero"`
	SeatSection     Optional[SeatValue] `json:"seatSection,omitzero"`
	SeatRow         Optional[SeatValue] `json:"seatRow,omitzero"`
	SeatNumber      Optional[SeatValue] `json:"seatNumber,omitzero"`
	IsFanClubMember bool                `json:"isFanClubMember"`
	FanClubID       string              `json:"fanClubId,omitempty"`

	// Extra holds members the ticket carried that are not modeled above.
	Extra map[string]json.RawMessage `json:"-"`
}

var ticketKeys = []string{"seatClass", "seatSection", "seatRow", "seatNumber", "isFanClubMember", "fanClubId"}

type ticketFields TicketSelection

func (t TicketSelection) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(ticketFields(t))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, t.Extra)
}

func (t *TicketSelection) UnmarshalJSON(data []byte) error {
	var fields ticketFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	extra, err := splitExtra(data, ticketKeys)
	if err != nil {
		return err
	}

	fields.Extra = extra
	*t = TicketSelection(fields)
	return nil
}

// SeatID returns the inventory key of the ticket's seat.
func (t TicketSelection) SeatID() (string, error) {
	section, ok := t.SeatSection.Get()
	if !ok {
		return "", errs.MissingField("seatSection")
	}

	row, ok := t.SeatRow.Get()
	if !ok {
		return "", errs.MissingField("seatRow")
	}

	number, ok := t.SeatNumber.Get()
	if !ok {
		return "", errs.MissingField("seatNumber")
	}

	return SeatID(section.String(), row.String(), number.String()), nil
}

func (t TicketSelection) RequireFanClubID() (string, error) {
	if t.FanClubID == "" {
		return "", errs.MissingField("fanClubId")
	}
	return t.FanClubID, nil
}

func SeatID(section, row, number string) string {
	return fmt.Sprintf("%s-%s-%s", section, row, number)
}

func HasFanClubMember(tickets []TicketSelection) bool {
	for _, ticket := range tickets {
		if ticket.IsFanClubMember {
			return true
		}
	}
	return false
}

// Order is the enriched purchase flowing through the order events topic.
type Order struct {
	OrderID           string            `json:"orderId"`
	PurchaseTimestamp string            `json:"purchaseTimestamp"`
	ConcertID         Optional[string]  `json:"concertId,omitzero"`
	ConcertName       Optional[string]  `json:"concertName,omitzero"`
	ConcertDate       Optional[string]  `json:"concertDate,omitzero"`
	Tickets           []TicketSelection `json:"tickets"`
	TotalAmount       Optional[float64] `json:"totalAmount,omitzero"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus,omitempty"`

	// Extra holds request members that are not modeled above. They travel
	// with the order and end up in the stored document.
	Extra map[string]json.RawMessage `json:"-"`
}

var orderKeys = []string{"orderId", "purchaseTimestamp", "concertId", "concertName", "concertDate", "tickets", "totalAmount", "paymentStatus"}

type orderFields Order

func (o Order) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(orderFields(o))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, o.Extra)
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var fields orderFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	extra, err := splitExtra(data, orderKeys)
	if err != nil {
		return err
	}

	fields.Extra = extra
	*o = Order(fields)
	return nil
}

// NewOrder enriches a request. Request members named like the fields intake
// assigns are not carried over.
func NewOrder(req PurchaseRequest, orderID string, purchasedAt time.Time) Order {
	return Order{
		OrderID:           orderID,
		PurchaseTimestamp: purchasedAt.UTC().Format(PurchaseTimestampLayout),
		ConcertID:         req.ConcertID,
		ConcertName:       req.ConcertName,
		ConcertDate:       req.ConcertDate,
		Tickets:           req.Tickets,
		TotalAmount:       req.TotalAmount,
		Extra:             withoutKeys(req.Extra, orderKeys),
	}
}

// DecodeOrder parses an order events body. Absent fields stay absent; each
// consumer asks for what it needs through the Require accessors.
func DecodeOrder(data []byte) (Order, error) {
	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return Order{}, errs.Malformed("", err)
	}
	return order, nil
}

func (o Order) HasFanClubMember() bool {
	return HasFanClubMember(o.Tickets)
}

// ChargeAmount is what the customer pays for total: one fan-club ticket
// discounts the whole order.
func (o Order) ChargeAmount(total float64) float64 {
	if o.HasFanClubMember() {
		return total * constant.FanClubDiscountMultiplier
	}
	return total
}

func (o Order) RequireTickets() ([]TicketSelection, error) {
	if o.Tickets == nil {
		return nil, errs.MissingField("tickets")
	}
	return o.Tickets, nil
}

func (o Order) RequireTotalAmount() (float64, error) {
	total, ok := o.TotalAmount.Get()
	if !ok {
		return 0, errs.MissingField("totalAmount")
	}
	return total, nil
}

func (o Order) RequireConcertID() (string, error) {
	concertID, ok := o.ConcertID.Get()
	if !ok || concertID == "" {
		return "", errs.MissingField("concertId")
	}
	return concertID, nil
}

// RewardAward is one fan-club credit produced by a qualifying ticket.
type RewardAward struct {
	FanClubID string
	Points    int64
}
