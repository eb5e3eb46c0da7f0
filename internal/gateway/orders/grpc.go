package orders

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"service-rider-platform/internal/domain"
	ordersproto "service-rider-platform/internal/proto"
)

// DialGRPC opens a traced client connection to the orders service.
func DialGRPC(addr string) (*grpc.ClientConn, error) {
	cc, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, fmt.Errorf("orders gateway: dial %s: %w", addr, err)
	}
	return cc, nil
}

// GRPCGateway is an orders gateway backed by gRPC.
type GRPCGateway struct {
	client ordersproto.OrdersServiceClient
}

// NewGRPCGateway creates an orders gateway backed by gRPC.
func NewGRPCGateway(client ordersproto.OrdersServiceClient) *GRPCGateway {
	if client == nil {
		return nil
	}
	return &GRPCGateway{client: client}
}

// GetByID fetches an order by ID from the orders service.
func (g *GRPCGateway) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	resp, err := g.client.GetOrderById(ctx, &ordersproto.GetOrderByIdRequest{Id: id})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("order gateway: GetOrderById: %w", err)
	}
	if resp.GetOrder() == nil {
		return nil, nil
	}
	ord := mapProtoOrder(resp.GetOrder())
	return &ord, nil
}

// List fetches orders matching f from the orders service.
func (g *GRPCGateway) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	req := &ordersproto.GetOrdersRequest{
		Statuses: statusStrings(f.Statuses),
		RiderId:  f.RiderID,
	}
	resp, err := g.client.GetOrders(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("order gateway: GetOrders: %w", err)
	}
	orders := make([]domain.Order, 0, len(resp.GetOrders()))
	for _, o := range resp.GetOrders() {
		if o == nil {
			continue
		}
		orders = append(orders, mapProtoOrder(o))
	}
	return orders, nil
}

// UpdateItemStatus moves one order item to a new status.
func (g *GRPCGateway) UpdateItemStatus(ctx context.Context, u domain.ItemStatusUpdate) (string, error) {
	resp, err := g.client.UpdateOrderItemStatus(ctx, &ordersproto.UpdateOrderItemStatusRequest{
		ItemId:     u.ItemID,
		RiderId:    u.RiderID,
		SupplierId: u.SupplierID,
		UserId:     u.UserID,
		Status:     string(u.Status),
		Title:      u.Title,
		Message:    u.Message,
	})
	if err != nil {
		return "", fmt.Errorf("order gateway: UpdateOrderItemStatus: %w", err)
	}
	return resp.GetStatusText(), nil
}

func mapProtoAddress(a *ordersproto.Address) *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func mapProtoOrder(o *ordersproto.Order) domain.Order {
	var createdAt time.Time
	if ts := o.GetCreatedAt(); ts != nil {
		createdAt = ts.AsTime()
	}
	out := domain.Order{
		ID:          o.GetId(),
		OrderNumber: o.OrderNumber,
		Status:      domain.ParseOrderStatus(o.GetStatus()),
		Total:       o.Total,
		CreatedAt:   createdAt,
		Address:     mapProtoAddress(o.Address),
	}
	if u := o.User; u != nil {
		out.User = &domain.User{ID: u.Id, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	}
	for _, it := range o.Items {
		if it == nil {
			continue
		}
		item := domain.OrderItem{
			ID:         it.Id,
			SupplierID: it.SupplierId,
			Quantity:   int(it.Quantity),
			Price:      it.Price,
			Status:     domain.ParseOrderStatus(it.Status),
			Product:    domain.Product{Name: it.ProductName, SKU: it.ProductSku},
		}
		for _, s := range it.Supplier {
			if s == nil {
				continue
			}
			sup := domain.Supplier{ID: s.Id, FirstName: s.FirstName}
			for _, a := range s.Addresses {
				if a != nil {
					sup.Addresses = append(sup.Addresses, *mapProtoAddress(a))
				}
			}
			item.Supplier = append(item.Supplier, sup)
		}
		out.Items = append(out.Items, item)
	}
	for _, p := range o.Payments {
		if p != nil {
			out.Payments = append(out.Payments, domain.Payment{ID: p.Id, Method: p.Method, Status: p.Status, Amount: p.Amount})
		}
	}
	return out
}
