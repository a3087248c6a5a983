package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

type sessionResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

// signupHandler godoc
// @Summary Register a store admin
// @Tags auth
// @Accept json
// @Produce json
// @Param body body user.SignupRequest true "Account"
// @Success 201 {object} user.User
// @Failure 409 {object} httpx.HTTPError
// @Router /api/signup [post]
func signupHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		u, err := users.Signup(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// loginHandler godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body user.LoginRequest true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} httpx.HTTPError
// @Router /api/auth/login [post]
func loginHandler(users *user.Service, tokens *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		u, err := users.Authenticate(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		tok, exp, err := tokens.Issue(u.Actor())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionResponse{Token: tok, ExpiresAt: exp, User: u})
	}
}

func meHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.FromContext(c)
		if !ok {
			httpx.Fail(c, apperr.ErrUnauthenticated)
			return
		}
		u, err := users.Get(c.Request.Context(), actor.UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
