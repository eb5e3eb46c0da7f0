package kafka

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"service-rider-platform/internal/service/orders"
)

// EventDTO is an order event as published by the commerce backend.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalJSON accepts created_at as RFC3339 text or epoch milliseconds, quoted or not.
func (d *EventDTO) UnmarshalJSON(b []byte) error {
	var raw struct {
		OrderID   string          `json:"order_id"`
		Status    string          `json:"status"`
		CreatedAt json.RawMessage `json:"created_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ts, err := parseEventTime(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	*d = EventDTO{OrderID: raw.OrderID, Status: raw.Status, CreatedAt: ts}
	return nil
}

func parseEventTime(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, nil
		}
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// ToDomain converts EventDTO to orders.Event with a normalised status.
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		Status:    strings.ToLower(strings.TrimSpace(dto.Status)),
		CreatedAt: dto.CreatedAt,
	}
}
