package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
)

// createOrderHandler godoc
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body order.CreateOrderRequest true "Order"
// @Success 201 {object} order.Detail
// @Failure 400 {object} httpx.HTTPError
// @Failure 404 {object} httpx.HTTPError
// @Router /api/orders [post]
func createOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		d, err := orders.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

// getOrderHandler godoc
// @Summary Get order with items and status view
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Detail
// @Failure 404 {object} httpx.HTTPError
// @Router /api/orders/{id} [get]
func getOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// updateOrderStatusHandler godoc
// @Summary Accept or reject an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param body body order.UpdateStatusRequest true "New status"
// @Success 200 {object} order.Detail
// @Failure 400 {object} httpx.HTTPError
// @Failure 401 {object} httpx.HTTPError
// @Failure 403 {object} httpx.HTTPError
// @Failure 409 {object} httpx.HTTPError
// @Router /api/orders/{id}/status [patch]
func updateOrderStatusHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.FromContext(c)
		if !ok {
			httpx.Fail(c, apperr.ErrUnauthenticated)
			return
		}
		var body order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
			httpx.BadRequest(c, "status is required")
			return
		}
		d, err := orders.UpdateStatus(c.Request.Context(), actor, c.Param("id"), body.Status)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
