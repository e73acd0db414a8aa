package userhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paintingauction/internal/http/httperr"
	"paintingauction/internal/http/middleware"
	"paintingauction/internal/services/user"
)

type Handler struct {
	svc user.IUserService
}

func New(svc user.IUserService) *Handler { return &Handler{svc: svc} }

// Register mounts the account routes: public ones for sign-up and sign-in,
// authed for any valid token, admin for user management.
func (h *Handler) Register(public, authed, admin gin.IRoutes) {
	public.POST("/auth/register", h.register)
	public.POST("/auth/login", h.login)
	authed.GET("/auth/me", h.me)
	admin.GET("/admin/users", h.list)
	admin.PUT("/admin/users/:id/role", h.setRole)
}

// @Summary		Register
// @Description	Creates a Bidder (or User) account and returns a bearer token.
// @Tags			Auth
// @Param			body	body		RegisterBody	true	"Account details"
// @Success		201		{object}	user.AuthResponse
// @Failure		400		{object}	httperr.ErrorResponse
// @Failure		403		{object}	httperr.ErrorResponse
// @Failure		409		{object}	httperr.ErrorResponse
// @Router			/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var body RegisterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), user.RegisterInput(body))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary		Log in
// @Tags			Auth
// @Param			body	body		LoginBody	true	"Credentials"
// @Success		200		{object}	user.AuthResponse
// @Failure		401		{object}	httperr.ErrorResponse
// @Router			/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary		Current user
// @Tags			Auth
// @Security		BearerAuth
// @Success		200	{object}	user.UserDTO
// @Failure		401	{object}	httperr.ErrorResponse
// @Router			/auth/me [get]
func (h *Handler) me(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	u, err := h.svc.Me(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary		List users
// @Tags			Admin
// @Security		BearerAuth
// @Success		200	{array}		user.UserDTO
// @Failure		403	{object}	httperr.ErrorResponse
// @Router			/admin/users [get]
func (h *Handler) list(c *gin.Context) {
	out, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Change a user's role
// @Description	The last remaining admin cannot be demoted.
// @Tags			Admin
// @Security		BearerAuth
// @Param			id		path	string		true	"User ID"	format(uuid)
// @Param			body	body	SetRoleBody	true	"New role"
// @Success		204
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Failure		409	{object}	httperr.ErrorResponse
// @Router			/admin/users/{id}/role [put]
func (h *Handler) setRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, httperr.ErrorResponse{Error: "invalid id"})
		return
	}
	var body SetRoleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	actor, _ := middleware.IdentityFrom(c)

	if err := h.svc.SetRole(c.Request.Context(), actor, userID, body.Role); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
