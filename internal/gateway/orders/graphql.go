package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/machinebox/graphql"

	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/logx"
)

const orderFields = `
	id
	orderNumber
	status
	total
	createdAt
	user { id firstName lastName email }
	address { street city state zipCode country }
	items {
		id
		supplierId
		quantity
		price
		status
		product { name sku }
		supplier { id firstName addresses { street city state zipCode country } }
	}
	payments { id method status amount }
`

const ordersQuery = `query Orders($statuses: [OrderStatus!], $riderId: ID) {
	orders(statuses: $statuses, riderId: $riderId) {` + orderFields + `}
}`

const orderQuery = `query Order($id: ID!) {
	order(id: $id) {` + orderFields + `}
}`

const updateOrderStatusMutation = `mutation UpdateOrderStatus(
	$itemId: ID!, $riderId: ID!, $supplierId: ID!, $userId: ID!,
	$status: OrderStatus!, $title: String!, $message: String!
) {
	updateOrderStatus(
		itemId: $itemId, riderId: $riderId, supplierId: $supplierId, userId: $userId,
		status: $status, title: $title, message: $message
	) { statusText }
}`

// GraphQLGateway talks to the commerce backend GraphQL API.
type GraphQLGateway struct {
	client *graphql.Client
	token  string
}

// NewGraphQLGateway creates a gateway for endpoint. httpClient may be nil.
func NewGraphQLGateway(endpoint, token string, httpClient *http.Client, logger logx.Logger) *GraphQLGateway {
	if endpoint == "" {
		return nil
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logx.Nop()
	}
	c := graphql.NewClient(endpoint, graphql.WithHTTPClient(guardedClient(httpClient)))
	c.Log = func(s string) { logger.Debug("graphql", logx.String("detail", s)) }
	return &GraphQLGateway{client: c, token: token}
}

// GetByID fetches one order. A missing order yields (nil, nil).
func (g *GraphQLGateway) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	req := g.request(orderQuery)
	req.Var("id", id)

	var resp struct {
		Order *orderDTO `json:"order"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("orders gateway: order: %w", err)
	}
	if resp.Order == nil {
		return nil, nil
	}
	ord := resp.Order.toDomain()
	return &ord, nil
}

// List fetches the orders matching f.
func (g *GraphQLGateway) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	req := g.request(ordersQuery)
	if s := statusStrings(f.Statuses); s != nil {
		req.Var("statuses", s)
	}
	if f.RiderID != "" {
		req.Var("riderId", f.RiderID)
	}

	var resp struct {
		Orders []orderDTO `json:"orders"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("orders gateway: orders: %w", err)
	}
	out := make([]domain.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		out = append(out, o.toDomain())
	}
	return out, nil
}

// UpdateItemStatus runs the updateOrderStatus mutation for one item.
func (g *GraphQLGateway) UpdateItemStatus(ctx context.Context, u domain.ItemStatusUpdate) (string, error) {
	req := g.request(updateOrderStatusMutation)
	req.Var("itemId", u.ItemID)
	req.Var("riderId", u.RiderID)
	req.Var("supplierId", u.SupplierID)
	req.Var("userId", u.UserID)
	req.Var("status", string(u.Status))
	req.Var("title", u.Title)
	req.Var("message", u.Message)

	var resp struct {
		UpdateOrderStatus *struct {
			StatusText string `json:"statusText"`
		} `json:"updateOrderStatus"`
	}
	if err := g.run(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("orders gateway: updateOrderStatus: %w", err)
	}
	if resp.UpdateOrderStatus == nil {
		return "", nil
	}
	return resp.UpdateOrderStatus.StatusText, nil
}

func (g *GraphQLGateway) request(q string) *graphql.Request {
	req := graphql.NewRequest(q)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	return req
}

func (g *GraphQLGateway) run(ctx context.Context, req *graphql.Request, resp any) error {
	return classifyGraphQL(g.client.Run(ctx, req, resp))
}

// classifyGraphQL marks network failures and 429/5xx replies as ErrUnavailable.
func classifyGraphQL(err error) error {
	if err == nil {
		return nil
	}
	var se *statusError
	if errors.As(err, &se) {
		return unavailable(err)
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return unavailable(err)
	}
	return err
}

// statusError is an HTTP reply the backend could not serve (429 or 5xx).
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("graphql: backend replied %d %s", e.code, http.StatusText(e.code))
}

// statusGuard fails overloaded replies before the graphql client decodes
// their body, which it would otherwise accept regardless of status.
type statusGuard struct {
	next http.RoundTripper
}

func (g statusGuard) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := g.next.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		return nil, &statusError{code: resp.StatusCode}
	}
	return resp, nil
}

// guardedClient copies hc with its transport wrapped in statusGuard.
func guardedClient(hc *http.Client) *http.Client {
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	cp := *hc
	cp.Transport = statusGuard{next: next}
	return &cp
}
