package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

// listEstablishmentsHandler godoc
// @Summary Every establishment with order/product counts and its admins
// @Tags super-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} establishment.Summary
// @Router /api/super-admin/establishments [get]
func listEstablishmentsHandler(ests *establishment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := ests.List(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func createEstablishmentHandler(ests *establishment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req establishment.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		e, err := ests.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

func updateEstablishmentHandler(ests *establishment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req establishment.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		e, err := ests.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// setEstablishmentActiveHandler godoc
// @Summary Show or hide an establishment
// @Tags super-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Establishment ID"
// @Param body body establishment.SetActiveRequest true "Visibility"
// @Success 200 {object} establishment.Establishment
// @Router /api/super-admin/establishments/{id} [patch]
func setEstablishmentActiveHandler(ests *establishment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req establishment.SetActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
			httpx.BadRequest(c, "active is required")
			return
		}
		e, err := ests.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func createStoreAdminHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.CreateStoreAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		u, err := users.CreateStoreAdmin(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func statsHandler(ests *establishment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := ests.Stats(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}
