package handlers

import (
	"time"

	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/money"
	"service-rider-platform/internal/service/transition"
)

type riderDTO struct {
	ID            int64                     `json:"id"`
	Name          string                    `json:"name"`
	Phone         string                    `json:"phone"`
	Status        domain.RiderStatus        `json:"status"`
	TransportType domain.RiderTransportType `json:"transport_type"`
}

type createRiderRequest struct {
	Name          string                    `json:"name" validate:"required,max=200"`
	Phone         string                    `json:"phone" validate:"required,e164"`
	Status        domain.RiderStatus        `json:"status" validate:"omitempty,oneof=available busy paused"`
	TransportType domain.RiderTransportType `json:"transport_type" validate:"omitempty,oneof=on_foot scooter car"`
}

type updateRiderRequest struct {
	ID            int64                      `json:"id" validate:"required,gt=0"`
	Name          *string                    `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone         *string                    `json:"phone,omitempty" validate:"omitempty,e164"`
	Status        *domain.RiderStatus        `json:"status,omitempty" validate:"omitempty,oneof=available busy paused"`
	TransportType *domain.RiderTransportType `json:"transport_type,omitempty" validate:"omitempty,oneof=on_foot scooter car"`
}

type itemDTO struct {
	ID          string             `json:"id"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity"`
	Price       float64            `json:"price"`
	Status      domain.OrderStatus `json:"status,omitempty"`
}

type deliveryDTO struct {
	ID                    string             `json:"id"`
	OrderID               string             `json:"order_id"`
	OrderRecordID         string             `json:"order_record_id"`
	SupplierID            string             `json:"supplier_id"`
	SupplierName          string             `json:"supplier_name"`
	Customer              string             `json:"customer"`
	CustomerID            string             `json:"customer_id,omitempty"`
	Pickup                string             `json:"pickup"`
	Dropoff               string             `json:"dropoff"`
	Payout                string             `json:"payout"`
	PayoutAmount          float64            `json:"payout_amount"`
	Subtotal              string             `json:"subtotal"`
	Distance              string             `json:"distance"`
	ExpiresIn             string             `json:"expires_in"`
	Items                 int                `json:"items"`
	IsPartialDelivery     bool               `json:"is_partial_delivery"`
	TotalSuppliersInOrder int                `json:"total_suppliers_in_order"`
	SupplierIndex         int                `json:"supplier_index"`
	SupplierItems         []itemDTO          `json:"supplier_items"`
	Status                domain.OrderStatus `json:"status"`
	CreatedAt             time.Time          `json:"created_at"`
}

type transitionRequest struct {
	Action domain.RiderAction `json:"action" validate:"required,oneof=accept pickup deliver cancel"`
	Reason string             `json:"reason,omitempty" validate:"max=500"`
}

type transitionItemDTO struct {
	ItemID string            `json:"item_id"`
	Result domain.ItemResult `json:"result"`
}

type transitionResponse struct {
	TransitionID string              `json:"transition_id"`
	From         domain.OrderStatus  `json:"from"`
	To           domain.OrderStatus  `json:"to"`
	Items        []transitionItemDTO `json:"items"`
	Delivery     deliveryDTO         `json:"delivery"`
}

type transitionRecordDTO struct {
	ID        string                   `json:"id"`
	RiderID   string                   `json:"rider_id"`
	Action    domain.RiderAction       `json:"action"`
	From      domain.OrderStatus       `json:"from"`
	To        domain.OrderStatus       `json:"to"`
	Reason    string                   `json:"reason,omitempty"`
	Outcome   domain.TransitionOutcome `json:"outcome"`
	Error     string                   `json:"error,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	Items     []transitionItemDTO      `json:"items"`
}

func (r createRiderRequest) toModel() *domain.Rider {
	return &domain.Rider{
		Name:          r.Name,
		Phone:         r.Phone,
		Status:        r.Status,
		TransportType: r.TransportType,
	}
}

func (r updateRiderRequest) toModel() domain.PartialRiderUpdate {
	return domain.PartialRiderUpdate{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Status:        r.Status,
		TransportType: r.TransportType,
	}
}

func riderToResponse(r domain.Rider) riderDTO {
	return riderDTO{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Status:        r.Status,
		TransportType: r.TransportType,
	}
}

func ridersToResponse(list []domain.Rider) []riderDTO {
	out := make([]riderDTO, 0, len(list))
	for _, r := range list {
		out = append(out, riderToResponse(r))
	}
	return out
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	items := make([]itemDTO, 0, len(d.SupplierItems))
	for _, it := range d.SupplierItems {
		items = append(items, itemDTO{
			ID:          it.ID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Status:      it.Status,
		})
	}
	return deliveryDTO{
		ID:                    d.ID,
		OrderID:               d.OrderID,
		OrderRecordID:         d.OrderRecordID,
		SupplierID:            d.SupplierID,
		SupplierName:          d.SupplierName,
		Customer:              d.Customer,
		CustomerID:            d.CustomerID,
		Pickup:                d.Pickup,
		Dropoff:               d.Dropoff,
		Payout:                d.Payout,
		PayoutAmount:          money.Round2(d.PayoutAmount),
		Subtotal:              d.Subtotal,
		Distance:              d.Distance,
		ExpiresIn:             d.ExpiresIn,
		Items:                 d.Items,
		IsPartialDelivery:     d.IsPartialDelivery,
		TotalSuppliersInOrder: d.TotalSuppliersInOrder,
		SupplierIndex:         d.SupplierIndex,
		SupplierItems:         items,
		Status:                d.Status,
		CreatedAt:             d.CreatedAt,
	}
}

func deliveriesToResponse(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, deliveryToResponse(d))
	}
	return out
}

func itemsToResponse(in []domain.TransitionItem) []transitionItemDTO {
	out := make([]transitionItemDTO, 0, len(in))
	for _, it := range in {
		out = append(out, transitionItemDTO{ItemID: it.ItemID, Result: it.Result})
	}
	return out
}

func resultToResponse(res *transition.Result) transitionResponse {
	return transitionResponse{
		TransitionID: res.TransitionID,
		From:         res.From,
		To:           res.To,
		Items:        itemsToResponse(res.Items),
		Delivery:     deliveryToResponse(res.Delivery),
	}
}

func recordsToResponse(list []domain.TransitionRecord) []transitionRecordDTO {
	out := make([]transitionRecordDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, transitionRecordDTO{
			ID:        rec.ID,
			RiderID:   rec.RiderID,
			Action:    rec.Action,
			From:      rec.From,
			To:        rec.To,
			Reason:    rec.Reason,
			Outcome:   rec.Outcome,
			Error:     rec.Error,
			CreatedAt: rec.CreatedAt,
			Items:     itemsToResponse(rec.Items),
		})
	}
	return out
}
