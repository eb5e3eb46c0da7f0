// Package ordersproto holds the orders.v1.OrdersService contract: messages, a client and the codec.
package ordersproto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Full method names of orders.v1.OrdersService.
const (
	OrdersService_GetOrders_FullMethodName             = "/orders.v1.OrdersService/GetOrders"
	OrdersService_GetOrderById_FullMethodName          = "/orders.v1.OrdersService/GetOrderById"
	OrdersService_UpdateOrderItemStatus_FullMethodName = "/orders.v1.OrdersService/UpdateOrderItemStatus"
)

// Address is a postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// Supplier is the merchant of an item.
type Supplier struct {
	Id        string     `json:"id,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	Addresses []*Address `json:"addresses,omitempty"`
}

// OrderItem is one order line.
type OrderItem struct {
	Id          string      `json:"id,omitempty"`
	SupplierId  string      `json:"supplier_id,omitempty"`
	Quantity    int32       `json:"quantity,omitempty"`
	Price       float64     `json:"price,omitempty"`
	Status      string      `json:"status,omitempty"`
	ProductName string      `json:"product_name,omitempty"`
	ProductSku  string      `json:"product_sku,omitempty"`
	Supplier    []*Supplier `json:"supplier,omitempty"`
}

// User is the customer.
type User struct {
	Id        string `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Payment is an order payment.
type Payment struct {
	Id     string  `json:"id,omitempty"`
	Method string  `json:"method,omitempty"`
	Status string  `json:"status,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

// Order is an order as served by the orders service.
type Order struct {
	Id          string                 `json:"id,omitempty"`
	OrderNumber string                 `json:"order_number,omitempty"`
	Status      string                 `json:"status,omitempty"`
	Total       float64                `json:"total,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	User        *User                  `json:"user,omitempty"`
	Address     *Address               `json:"address,omitempty"`
	Items       []*OrderItem           `json:"items,omitempty"`
	Payments    []*Payment             `json:"payments,omitempty"`
}

// GetId returns the order id.
func (o *Order) GetId() string {
	if o == nil {
		return ""
	}
	return o.Id
}

// GetStatus returns the order status.
func (o *Order) GetStatus() string {
	if o == nil {
		return ""
	}
	return o.Status
}

// GetCreatedAt returns the creation timestamp.
func (o *Order) GetCreatedAt() *timestamppb.Timestamp {
	if o == nil {
		return nil
	}
	return o.CreatedAt
}

// GetOrdersRequest filters GetOrders.
type GetOrdersRequest struct {
	From     *timestamppb.Timestamp `json:"from,omitempty"`
	Statuses []string               `json:"statuses,omitempty"`
	RiderId  string                 `json:"rider_id,omitempty"`
}

// GetOrdersResponse is the GetOrders result.
type GetOrdersResponse struct {
	Orders []*Order `json:"orders,omitempty"`
}

// GetOrders returns the orders.
func (r *GetOrdersResponse) GetOrders() []*Order {
	if r == nil {
		return nil
	}
	return r.Orders
}

// GetOrderByIdRequest selects one order.
type GetOrderByIdRequest struct {
	Id string `json:"id,omitempty"`
}

// GetId returns the requested id.
func (r *GetOrderByIdRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

// GetOrderByIdResponse is the GetOrderById result.
type GetOrderByIdResponse struct {
	Order *Order `json:"order,omitempty"`
}

// GetOrder returns the order, nil when absent.
func (r *GetOrderByIdResponse) GetOrder() *Order {
	if r == nil {
		return nil
	}
	return r.Order
}

// UpdateOrderItemStatusRequest moves one item to a new status.
type UpdateOrderItemStatusRequest struct {
	ItemId     string `json:"item_id,omitempty"`
	RiderId    string `json:"rider_id,omitempty"`
	SupplierId string `json:"supplier_id,omitempty"`
	UserId     string `json:"user_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
}

// UpdateOrderItemStatusResponse is the UpdateOrderItemStatus result.
type UpdateOrderItemStatusResponse struct {
	StatusText string `json:"status_text,omitempty"`
}

// GetStatusText returns the status text.
func (r *UpdateOrderItemStatusResponse) GetStatusText() string {
	if r == nil {
		return ""
	}
	return r.StatusText
}

// OrdersServiceClient is the client API for orders.v1.OrdersService.
type OrdersServiceClient interface {
	GetOrders(ctx context.Context, in *GetOrdersRequest, opts ...grpc.CallOption) (*GetOrdersResponse, error)
	GetOrderById(ctx context.Context, in *GetOrderByIdRequest, opts ...grpc.CallOption) (*GetOrderByIdResponse, error)
	UpdateOrderItemStatus(ctx context.Context, in *UpdateOrderItemStatusRequest, opts ...grpc.CallOption) (*UpdateOrderItemStatusResponse, error)
}

type ordersServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOrdersServiceClient returns a client bound to cc.
func NewOrdersServiceClient(cc grpc.ClientConnInterface) OrdersServiceClient {
	return &ordersServiceClient{cc: cc}
}

func (c *ordersServiceClient) GetOrders(ctx context.Context, in *GetOrdersRequest, opts ...grpc.CallOption) (*GetOrdersResponse, error) {
	out := new(GetOrdersResponse)
	if err := c.cc.Invoke(ctx, OrdersService_GetOrders_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ordersServiceClient) GetOrderById(ctx context.Context, in *GetOrderByIdRequest, opts ...grpc.CallOption) (*GetOrderByIdResponse, error) {
	out := new(GetOrderByIdResponse)
	if err := c.cc.Invoke(ctx, OrdersService_GetOrderById_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ordersServiceClient) UpdateOrderItemStatus(ctx context.Context, in *UpdateOrderItemStatusRequest, opts ...grpc.CallOption) (*UpdateOrderItemStatusResponse, error) {
	out := new(UpdateOrderItemStatusResponse)
	if err := c.cc.Invoke(ctx, OrdersService_UpdateOrderItemStatus_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
}
