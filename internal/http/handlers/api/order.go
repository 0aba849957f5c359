package api

import (
	"strings"

	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/repository"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderItemRequest 订单项请求
type CreateOrderItemRequest struct {
	MedicineID uint `json:"medicine_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	PharmacyID        uint                     `json:"pharmacy_id" binding:"required"`
	Items             []CreateOrderItemRequest `json:"items" binding:"required"`
	DeliveryAddress   string                   `json:"delivery_address"`
	DeliveryLatitude  float64                  `json:"delivery_latitude" binding:"required"`
	DeliveryLongitude float64                  `json:"delivery_longitude" binding:"required"`
	PaymentMethod     string                   `json:"payment_method" binding:"required"`
	Phone             string                   `json:"phone"`
	UseRewardPoints   bool                     `json:"use_reward_points"`
	Notes             string                   `json:"notes"`
}

// CreateOrder 顾客下单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	items := make([]service.CreateOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItemInput{
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
		})
	}

	order, err := h.OrderService.Create(service.CreateOrderInput{
		CustomerID:        userID,
		PharmacyID:        req.PharmacyID,
		Items:             items,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryLatitude:  req.DeliveryLatitude,
		DeliveryLongitude: req.DeliveryLongitude,
		PaymentMethod:     req.PaymentMethod,
		ContactPhone:      req.Phone,
		RedeemPoints:      req.UseRewardPoints,
		Notes:             req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "failed to create order")
		return
	}

	response.Created(c, order)
}

// ListOrders 订单列表，按当前角色过滤归属
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	role, ok := getUserRole(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}

	orders, total, err := h.OrderService.ListMine(userID, role, filter)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "failed to list orders")
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情，按当前角色校验归属
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	role, ok := getUserRole(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetForActor(userID, role, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "failed to load order")
		return
	}

	response.Success(c, order)
}

// CancelOrder 顾客取消订单，按下单时长收取手续费
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.CancelAsCustomer(userID, orderID)
	if err != nil {
		rules := concatMappedHandlerErrors(orderLookupErrorRules, orderStatusErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "failed to cancel order")
		return
	}

	response.Success(c, order)
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 药房/骑手更新订单状态，各角色允许的流转不同
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	role, ok := getUserRole(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	var (
		order interface{}
		err   error
	)
	switch role {
	case constants.RolePharmacy:
		order, err = h.OrderService.UpdateStatusAsPharmacy(userID, orderID, req.Status)
	case constants.RoleDriver:
		order, err = h.OrderService.UpdateStatusAsDriver(userID, orderID, req.Status)
	default:
		respondError(c, response.CodeForbidden, "role cannot update order status", nil)
		return
	}
	if err != nil {
		rules := concatMappedHandlerErrors(orderLookupErrorRules, orderStatusErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "failed to update order status")
		return
	}

	response.Success(c, order)
}

// AssignDriverRequest 指派骑手请求
type AssignDriverRequest struct {
	DriverID uint `json:"driver_id" binding:"required"`
}

// AssignDriver 药房为订单指派骑手
func (h *Handler) AssignDriver(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.AssignDriver(userID, orderID, req.DriverID)
	if err != nil {
		rules := concatMappedHandlerErrors(orderLookupErrorRules, orderStatusErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "failed to assign driver")
		return
	}

	response.Success(c, order)
}

// AcceptOrder 骑手接单
func (h *Handler) AcceptOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.AcceptAsDriver(userID, orderID)
	if err != nil {
		rules := concatMappedHandlerErrors(orderLookupErrorRules, orderStatusErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "failed to accept order")
		return
	}

	response.Success(c, order)
}

// CompleteDelivery 骑手确认送达并结算收入
func (h *Handler) CompleteDelivery(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.CompleteDelivery(userID, orderID)
	if err != nil {
		rules := concatMappedHandlerErrors(orderLookupErrorRules, orderStatusErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "failed to complete delivery")
		return
	}

	response.Success(c, order)
}

// ListAvailableOrders 待接单列表（骑手）
func (h *Handler) ListAvailableOrders(c *gin.Context) {
	page, pageSize := parsePageQuery(c)

	orders, total, err := h.OrderService.ListUnassigned(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list available orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// ReviewDriverRequest 评价骑手请求
type ReviewDriverRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewDriver 顾客评价配送骑手
func (h *Handler) ReviewDriver(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	review, err := h.OrderService.ReviewDriver(userID, orderID, req.Rating, req.Comment)
	if err != nil {
		rules := concatMappedHandlerErrors(orderLookupErrorRules, reviewErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "failed to review driver")
		return
	}

	response.Created(c, review)
}
