// Package http exposes the owner-facing order API over echo. Handlers are
// thin: parse, build a command or query, dispatch, map the result. All
// business rules live in the use cases.
package http

import (
	"net/http"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// OwnerIDHeader carries the authenticated owner identity, set by the API
// gateway in front of this service. The service trusts it; authentication
// itself is the gateway's concern.
const OwnerIDHeader = "X-Owner-ID"

// Server wires HTTP routes to command and query handlers.
type Server struct {
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	rejectHandler       commands.RejectOrderCommandHandler
	setCookingHandler   commands.SetCookingTimeCommandHandler
	bulkHandler         commands.BulkOrderActionCommandHandler
	getOrdersHandler    queries.GetOrdersQueryHandler
	getDetailHandler    queries.GetOrderDetailQueryHandler
	getPendingHandler   queries.GetPendingOrdersQueryHandler
	getStatsHandler     queries.GetOrderStatsQueryHandler
}

// NewServer creates the HTTP server with its use case handlers.
func NewServer(
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	rejectHandler commands.RejectOrderCommandHandler,
	setCookingHandler commands.SetCookingTimeCommandHandler,
	bulkHandler commands.BulkOrderActionCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getDetailHandler queries.GetOrderDetailQueryHandler,
	getPendingHandler queries.GetPendingOrdersQueryHandler,
	getStatsHandler queries.GetOrderStatsQueryHandler,
) *Server {
	return &Server{
		updateStatusHandler: updateStatusHandler,
		rejectHandler:       rejectHandler,
		setCookingHandler:   setCookingHandler,
		bulkHandler:         bulkHandler,
		getOrdersHandler:    getOrdersHandler,
		getDetailHandler:    getDetailHandler,
		getPendingHandler:   getPendingHandler,
		getStatsHandler:     getStatsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/restaurants/:restaurantId/orders", s.GetOrders)
	api.GET("/restaurants/:restaurantId/orders/pending", s.GetPendingOrders)
	api.GET("/restaurants/:restaurantId/orders/stats", s.GetOrderStats)
	api.POST("/restaurants/:restaurantId/orders/bulk", s.BulkOrderAction)

	api.GET("/orders/:orderId", s.GetOrderDetail)
	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderId/reject", s.RejectOrder)
	api.PATCH("/orders/:orderId/cooking-time", s.SetCookingTime)
}

// ownerID extracts the authenticated owner from the gateway header.
func ownerID(ctx echo.Context) (kernel.UUID, bool) {
	raw := ctx.Request().Header.Get(OwnerIDHeader)
	if raw == "" {
		return kernel.UUID{}, false
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "missing or malformed " + OwnerIDHeader + " header",
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// UpdateOrderStatusRequest is the body of PATCH /orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	CookingTime    int    `json:"cookingTime,omitempty"`
	Memo           string `json:"memo,omitempty"`
	NotifyCustomer bool   `json:"notifyCustomer"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		owner, orderID, status, req.CookingTime, req.Memo, req.NotifyCustomer,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// RejectOrderRequest is the body of POST /orders/{id}/reject.
type RejectOrderRequest struct {
	Reason          string `json:"reason"`
	Detail          string `json:"detail,omitempty"`
	CustomerMessage string `json:"customerMessage,omitempty"`
	AutoRefund      bool   `json:"autoRefund"`
}

// RejectOrder handles POST /api/v1/orders/{orderId}/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req RejectOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRejectOrderCommand(
		owner, orderID, order.RejectionReason(req.Reason),
		req.Detail, req.CustomerMessage, req.AutoRefund,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	rejected, err := s.rejectHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(rejected))
}

// SetCookingTimeRequest is the body of PATCH /orders/{id}/cooking-time.
type SetCookingTimeRequest struct {
	Minutes        int    `json:"minutes"`
	Reason         string `json:"reason,omitempty"`
	NotifyCustomer bool   `json:"notifyCustomer"`
}

// SetCookingTime handles PATCH /api/v1/orders/{orderId}/cooking-time.
func (s *Server) SetCookingTime(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req SetCookingTimeRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewSetCookingTimeCommand(owner, orderID, req.Minutes, req.Reason, req.NotifyCustomer)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.setCookingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// BulkOrderActionRequest is the body of POST /restaurants/{id}/orders/bulk.
type BulkOrderActionRequest struct {
	Action      string   `json:"action"`
	OrderIDs    []string `json:"orderIds"`
	Reason      string   `json:"reason,omitempty"`
	CookingTime int      `json:"cookingTime,omitempty"`
}

// BulkOrderActionResponse partitions the batch result for the client.
type BulkOrderActionResponse struct {
	Succeeded []string                  `json:"succeeded"`
	Failed    []BulkFailedOrderResponse `json:"failed"`
}

// BulkFailedOrderResponse reports one failed order of a batch.
type BulkFailedOrderResponse struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// BulkOrderAction handles POST /api/v1/restaurants/{restaurantId}/orders/bulk.
func (s *Server) BulkOrderAction(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req BulkOrderActionRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkOrderActionCommand(
		owner, restaurantID, orderIDs,
		commands.BulkAction(req.Action),
		order.RejectionReason(req.Reason),
		req.CookingTime,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bulkHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := BulkOrderActionResponse{
		Succeeded: make([]string, 0, len(result.Succeeded)),
		Failed:    make([]BulkFailedOrderResponse, 0, len(result.Failed)),
	}
	for _, id := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, id.String())
	}
	for _, failed := range result.Failed {
		resp.Failed = append(resp.Failed, BulkFailedOrderResponse{
			OrderID: failed.OrderID.String(),
			Reason:  failed.Reason,
			Message: failed.Message,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetOrders handles GET /api/v1/restaurants/{restaurantId}/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return writeError(ctx, err)
	}

	status := order.Unknown
	if raw := ctx.QueryParam("status"); raw != "" {
		if status, err = order.StatusFromString(raw); err != nil {
			return writeError(ctx, err)
		}
	}

	var limit, offset int
	if err = echo.QueryParamsBinder(ctx).Int("limit", &limit).Int("offset", &offset).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "limit and offset must be integers",
		})
	}

	query, err := queries.NewGetOrdersQuery(owner, restaurantID, status, limit, offset)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, OrderSummaryResponse{
			ID:                   o.ID.String(),
			OrderNumber:          o.OrderNumber,
			Status:               o.Status.String(),
			PaymentStatus:        o.PaymentStatus.String(),
			ItemCount:            o.ItemCount,
			Total:                o.Total,
			EstimatedCookingTime: o.EstimatedCookingTime,
			CreatedAt:            o.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetPendingOrders handles GET /api/v1/restaurants/{restaurantId}/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPendingOrdersQuery(owner, restaurantID, 0)
	if err != nil {
		return writeError(ctx, err)
	}

	pending, err := s.getPendingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]PendingOrderResponse, 0, len(pending))
	for _, p := range pending {
		resp = append(resp, PendingOrderResponse{
			ID:             p.ID.String(),
			OrderNumber:    p.OrderNumber,
			Status:         p.Status.String(),
			ItemCount:      p.ItemCount,
			Total:          p.Total,
			CreatedAt:      p.CreatedAt,
			WaitingSeconds: int64(p.Waiting.Seconds()),
			IsUrgent:       p.IsUrgent,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetOrderStats handles GET /api/v1/restaurants/{restaurantId}/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	restaurantID, err := pathUUID(ctx, "restaurantId")
	if err != nil {
		return writeError(ctx, err)
	}

	period := queries.StatsPeriod(ctx.QueryParam("period"))
	if period == "" {
		period = queries.PeriodToday
	}

	query, err := queries.NewGetOrderStatsQuery(owner, restaurantID, period)
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.getStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	counts := make(map[string]int, len(stats.CountsByStatus))
	for status, count := range stats.CountsByStatus {
		counts[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, OrderStatsResponse{
		Period:                string(stats.Period),
		Since:                 stats.Since,
		TotalOrders:           stats.TotalOrders,
		CountsByStatus:        counts,
		CompletedRevenue:      stats.CompletedRevenue,
		AvgPendingWaitSeconds: int64(stats.AvgPendingWait.Seconds()),
		MaxPendingWaitSeconds: int64(stats.MaxPendingWait.Seconds()),
	})
}

// GetOrderDetail handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderDetail(ctx echo.Context) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderDetailQuery(owner, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getDetailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := OrderDetailResponse{
		Order:   orderToResponse(detail.Order),
		History: make([]StatusChangeResponse, 0, len(detail.History)),
	}
	for _, entry := range detail.History {
		resp.History = append(resp.History, StatusChangeResponse{
			Kind:       string(entry.Kind),
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			ChangedBy:  entry.ChangedBy.String(),
			Reason:     entry.Reason,
			OccurredAt: entry.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// OrderSummaryResponse is one row of the order list.
type OrderSummaryResponse struct {
	ID                   string    `json:"id"`
	OrderNumber          string    `json:"orderNumber"`
	Status               string    `json:"status"`
	PaymentStatus        string    `json:"paymentStatus"`
	ItemCount            int       `json:"itemCount"`
	Total                int64     `json:"total"`
	EstimatedCookingTime int       `json:"estimatedCookingTime,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// PendingOrderResponse is one row of the pending queue.
type PendingOrderResponse struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	Status         string    `json:"status"`
	ItemCount      int       `json:"itemCount"`
	Total          int64     `json:"total"`
	CreatedAt      time.Time `json:"createdAt"`
	WaitingSeconds int64     `json:"waitingSeconds"`
	IsUrgent       bool      `json:"isUrgent"`
}

// OrderStatsResponse summarizes order activity for a period.
type OrderStatsResponse struct {
	Period                string         `json:"period"`
	Since                 time.Time      `json:"since"`
	TotalOrders           int            `json:"totalOrders"`
	CountsByStatus        map[string]int `json:"countsByStatus"`
	CompletedRevenue      int64          `json:"completedRevenue"`
	AvgPendingWaitSeconds int64          `json:"avgPendingWaitSeconds"`
	MaxPendingWaitSeconds int64          `json:"maxPendingWaitSeconds"`
}

// OrderItemResponse is one order line.
type OrderItemResponse struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// RejectionResponse describes why an order was rejected.
type RejectionResponse struct {
	Reason     string    `json:"reason"`
	Detail     string    `json:"detail,omitempty"`
	RejectedAt time.Time `json:"rejectedAt"`
}

// OrderResponse is the full order representation.
type OrderResponse struct {
	ID                   string              `json:"id"`
	OrderNumber          string              `json:"orderNumber"`
	RestaurantID         string              `json:"restaurantId"`
	Status               string              `json:"status"`
	PaymentStatus        string              `json:"paymentStatus"`
	Items                []OrderItemResponse `json:"items"`
	Subtotal             int64               `json:"subtotal"`
	DeliveryFee          int64               `json:"deliveryFee"`
	Discount             int64               `json:"discount"`
	Total                int64               `json:"total"`
	DeliveryAddress      string              `json:"deliveryAddress"`
	SpecialRequests      string              `json:"specialRequests,omitempty"`
	EstimatedCookingTime int                 `json:"estimatedCookingTime,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	ConfirmedAt          *time.Time          `json:"confirmedAt,omitempty"`
	CookingStartedAt     *time.Time          `json:"cookingStartedAt,omitempty"`
	CookingCompletedAt   *time.Time          `json:"cookingCompletedAt,omitempty"`
	DeliveredAt          *time.Time          `json:"deliveredAt,omitempty"`
	RejectedAt           *time.Time          `json:"rejectedAt,omitempty"`
	Rejection            *RejectionResponse  `json:"rejection,omitempty"`
}

// StatusChangeResponse is one audit trail entry.
type StatusChangeResponse struct {
	Kind       string    `json:"kind"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ChangedBy  string    `json:"changedBy"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderDetailResponse pairs the order with its history.
type OrderDetailResponse struct {
	Order   OrderResponse          `json:"order"`
	History []StatusChangeResponse `json:"history"`
}

func orderToResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var rejection *RejectionResponse
	if r := o.Rejection(); r != nil {
		rejection = &RejectionResponse{
			Reason:     string(r.Reason()),
			Detail:     r.Detail(),
			RejectedAt: r.RejectedAt(),
		}
	}

	pricing := o.Pricing()

	return OrderResponse{
		ID:                   o.ID().String(),
		OrderNumber:          o.OrderNumber(),
		RestaurantID:         o.RestaurantID().String(),
		Status:               o.Status().String(),
		PaymentStatus:        o.PaymentStatus().String(),
		Items:                items,
		Subtotal:             pricing.Subtotal,
		DeliveryFee:          pricing.DeliveryFee,
		Discount:             pricing.Discount,
		Total:                pricing.Total,
		DeliveryAddress:      o.DeliveryAddress(),
		SpecialRequests:      o.SpecialRequests(),
		EstimatedCookingTime: o.EstimatedCookingTime(),
		CreatedAt:            o.CreatedAt(),
		ConfirmedAt:          o.ConfirmedAt(),
		CookingStartedAt:     o.CookingStartedAt(),
		CookingCompletedAt:   o.CookingCompletedAt(),
		DeliveredAt:          o.DeliveredAt(),
		RejectedAt:           o.RejectedAt(),
		Rejection:            rejection,
	}
}
