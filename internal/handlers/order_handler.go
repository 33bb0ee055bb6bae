package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/dto"
	"github.com/BruksfildServices01/orders-api/internal/httpresp"
	ucOrder "github.com/BruksfildServices01/orders-api/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	create *ucOrder.CreateOrder
	update *ucOrder.UpdateOrder
	remove *ucOrder.DeleteOrder
	get    *ucOrder.GetOrder
	list   *ucOrder.ListOrders
}

func NewOrderHandler(
	create *ucOrder.CreateOrder,
	update *ucOrder.UpdateOrder,
	remove *ucOrder.DeleteOrder,
	get *ucOrder.GetOrder,
	list *ucOrder.ListOrders,
) *OrderHandler {
	return &OrderHandler{
		create: create,
		update: update,
		remove: remove,
		get:    get,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrderRequest struct {
	Status string     `json:"status" binding:"required,oneof=WAITING COMPLETED REFUNDED"`
	Owner  *uuid.UUID `json:"owner"`
}

type UpdateOrderRequest struct {
	Status *string    `json:"status" binding:"omitempty,oneof=WAITING COMPLETED REFUNDED"`
	Owner  *uuid.UUID `json:"owner"`
}

type ListOrdersQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=WAITING COMPLETED REFUNDED"`
}

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.create.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		Principal: p,
		OwnerID:   req.Owner,
		Status:    req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.NewOrderDTO(o, p.IsAdmin()))
}

// ======================================================
// READ
// ======================================================

func (h *OrderHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.get.Execute(c.Request.Context(), p, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewOrderDTO(o, p.IsAdmin()))
}

func (h *OrderHandler) List(c *gin.Context) {
	h.listFor(c, nil)
}

// ListForUser serves /users/:id/orders.
func (h *OrderHandler) ListForUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.listFor(c, &id)
}

func (h *OrderHandler) listFor(c *gin.Context, ownerID *uuid.UUID) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var q ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.list.Execute(c.Request.Context(), ucOrder.ListOrdersInput{
		Principal: p,
		OwnerID:   ownerID,
		Status:    q.Status,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, dto.NewOrderDTOs(res.Orders, p.IsAdmin()), res.Total, res.Page, res.Limit)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *OrderHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.update.Execute(c.Request.Context(), ucOrder.UpdateOrderInput{
		Principal: p,
		OrderID:   id,
		Status:    req.Status,
		OwnerID:   req.Owner,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewOrderDTO(o, p.IsAdmin()))
}

func (h *OrderHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), p, id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}
