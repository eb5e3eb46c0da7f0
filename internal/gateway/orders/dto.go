package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"service-rider-platform/internal/domain"
)

type addressDTO struct {
	Street  string  `json:"street"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode flexStr `json:"zipCode"`
	Country string  `json:"country"`
}

type supplierDTO struct {
	ID        flexStr      `json:"id"`
	FirstName string       `json:"firstName"`
	Addresses []addressDTO `json:"addresses"`
}

type productDTO struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type itemDTO struct {
	ID         flexStr       `json:"id"`
	SupplierID flexStr       `json:"supplierId"`
	Quantity   int           `json:"quantity"`
	Price      float64       `json:"price"`
	Status     string        `json:"status"`
	Product    *productDTO   `json:"product"`
	Supplier   []supplierDTO `json:"supplier"`
}

type userDTO struct {
	ID        flexStr `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
}

type paymentDTO struct {
	ID     flexStr `json:"id"`
	Method string  `json:"method"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

type orderDTO struct {
	ID          flexStr      `json:"id"`
	OrderNumber string       `json:"orderNumber"`
	Status      string       `json:"status"`
	Total       float64      `json:"total"`
	CreatedAt   timestamp    `json:"createdAt"`
	User        *userDTO     `json:"user"`
	Address     *addressDTO  `json:"address"`
	Items       []itemDTO    `json:"items"`
	Payments    []paymentDTO `json:"payments"`
}

// flexStr accepts both JSON strings and numbers (ids and zip codes arrive either way).
type flexStr string

func (s *flexStr) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexStr(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flexStr: %w", err)
	}
	*s = flexStr(n.String())
	return nil
}

// timestamp accepts RFC3339 strings and epoch milliseconds (number or numeric string).
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = timestamp{}
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*t = timestamp{}
			return nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			*t = timestamp(ts)
			return nil
		}
	}
	ms, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("createdAt: unsupported value %s", string(b))
	}
	*t = timestamp(time.UnixMilli(int64(ms)).UTC())
	return nil
}

func (a *addressDTO) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: string(a.ZipCode),
		Country: a.Country,
	}
}

func (o orderDTO) toDomain() domain.Order {
	out := domain.Order{
		ID:          string(o.ID),
		OrderNumber: o.OrderNumber,
		Status:      domain.ParseOrderStatus(o.Status),
		Total:       o.Total,
		CreatedAt:   time.Time(o.CreatedAt),
		Address:     o.Address.toDomain(),
	}
	if o.User != nil {
		out.User = &domain.User{
			ID:        string(o.User.ID),
			FirstName: o.User.FirstName,
			LastName:  o.User.LastName,
			Email:     o.User.Email,
		}
	}
	for _, it := range o.Items {
		item := domain.OrderItem{
			ID:         string(it.ID),
			SupplierID: string(it.SupplierID),
			Quantity:   it.Quantity,
			Price:      it.Price,
			Status:     domain.ParseOrderStatus(it.Status),
		}
		if it.Product != nil {
			item.Product = domain.Product{Name: it.Product.Name, SKU: it.Product.SKU}
		}
		for _, s := range it.Supplier {
			sup := domain.Supplier{ID: string(s.ID), FirstName: s.FirstName}
			for i := range s.Addresses {
				sup.Addresses = append(sup.Addresses, *s.Addresses[i].toDomain())
			}
			item.Supplier = append(item.Supplier, sup)
		}
		out.Items = append(out.Items, item)
	}
	for _, p := range o.Payments {
		out.Payments = append(out.Payments, domain.Payment{
			ID:     string(p.ID),
			Method: p.Method,
			Status: p.Status,
			Amount: p.Amount,
		})
	}
	return out
}
