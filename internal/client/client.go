// Package client embeds the booking-request workflow used by the department
// portal front ends: a typed API client plus the form state machine that
// validates locally, submits once, and reflects the outcome.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campusbook/internal/domain"
	"campusbook/internal/modules/booking"
)

// Session identifies the current user to the API. It is injected explicitly;
// nothing in this package reads ambient state.
type Session struct {
	Token  string
	UserID int64
}

// APIError is a non-2xx response decoded from the standard error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s message=%s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	session Session
	httpc   *http.Client
}

func New(baseURL string, session Session) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

var kindPaths = map[domain.ResourceKind]string{
	domain.KindEquipment: "equipment",
	domain.KindLab:       "labs",
	domain.KindRoom:      "rooms",
}

func (c *Client) ListResources(ctx context.Context, kind domain.ResourceKind) ([]domain.Resource, error) {
	var out struct {
		Resources []domain.Resource `json:"resources"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/"+kindPaths[kind], nil, &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}

func (c *Client) ListSlots(ctx context.Context, labID int64) ([]domain.TimeSlot, error) {
	var out struct {
		Slots []domain.TimeSlot `json:"slots"`
	}
	path := fmt.Sprintf("/api/v1/labs/%d/slots", labID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

func (c *Client) ListBookings(ctx context.Context, kind domain.ResourceKind) ([]booking.BookingListItem, error) {
	var out struct {
		Bookings []booking.BookingListItem `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/"+kindPaths[kind]+"/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, kind domain.ResourceKind, req booking.CreateBookingRequest) (*booking.BookingResponse, error) {
	var out struct {
		Booking booking.BookingResponse `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/"+kindPaths[kind]+"/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Code: "BAD_RESPONSE", Message: "undecodable response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: "request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			if len(env.Error.Details) > 0 {
				_ = json.Unmarshal(env.Error.Details, &apiErr.Fields)
			}
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
