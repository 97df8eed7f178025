package model

import "encoding/json"

type PurchaseRequest struct {
	ConcertID   Optional[string]  `json:"concertId,omitzero"`
	ConcertName Optional[string]  `json:"concertName,omitzero"`
	ConcertDate Optional[string]  `json:"concertDate,omitzero"`
	Tickets     []TicketSelection `json:"tickets" validate:"required"`
	TotalAmount Optional[float64] `json:"totalAmount,omitzero"`

	Extra map[string]json.RawMessage `json:"-"`
}

var purchaseRequestKeys = []string{"concertId", "concertName", "concertDate", "tickets", "totalAmount"}

type purchaseRequestFields PurchaseRequest

func (r *PurchaseRequest) UnmarshalJSON(data []byte) error {
	var fields purchaseRequestFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	extra, err := splitExtra(data, purchaseRequestKeys)
	if err != nil {
		return err
	}

	fields.Extra = extra
	*r = PurchaseRequest(fields)
	return nil
}

// PurchaseEnvelope is the gateway-style wrapper where the request arrives as a
// JSON string under "body".
type PurchaseEnvelope struct {
	Body *string `json:"body"`
}

type PurchaseResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}
