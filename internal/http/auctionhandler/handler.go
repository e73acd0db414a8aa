package auctionhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paintingauction/internal/http/httperr"
	"paintingauction/internal/services/auction"
)

type Handler struct {
	svc auction.IAuctionService
}

func New(svc auction.IAuctionService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(viewer, admin gin.IRoutes) {
	viewer.GET("/auctions", h.list)
	viewer.GET("/auctions/:id", h.info)
	admin.POST("/auctions", h.create)
	admin.PUT("/auctions/:id", h.update)
	admin.DELETE("/auctions/:id", h.delete)
}

// @Summary		Get auction details
// @Description	Returns full information about a single auction, including its painting ids.
// @Tags			Auctions
// @Security		BearerAuth
// @Param			id	path		int	true	"Auction ID"
// @Success		200	{object}	auction.AuctionDTO
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/auctions/{id} [get]
func (h *Handler) info(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetAuction(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary		List auctions
// @Description	Lists auctions ordered by start time, optionally filtered by text and status.
// @Tags			Auctions
// @Security		BearerAuth
// @Param			q		query		string	false	"Title or description contains"
// @Param			status	query		string	false	"Status filter"	Enums(Draft,Scheduled,Live,Paused,Ended,Cancelled)
// @Success		200		{array}		auction.AuctionDTO
// @Failure		400		{object}	httperr.ErrorResponse
// @Failure		500		{object}	httperr.ErrorResponse
// @Router			/auctions [get]
func (h *Handler) list(c *gin.Context) {
	var q ListAuctionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	out, err := h.svc.ListAuctions(c.Request.Context(), auction.ListFilter{Q: q.Q, Status: q.Status})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Create an auction
// @Description	Creates a Scheduled auction over the given paintings.
// @Tags			Auctions
// @Security		BearerAuth
// @Param			body	body		CreateAuctionBody	true	"Auction payload"
// @Success		201		{object}	auction.AuctionDTO
// @Failure		400		{object}	httperr.ErrorResponse
// @Failure		403		{object}	httperr.ErrorResponse
// @Router			/auctions [post]
func (h *Handler) create(c *gin.Context) {
	var body CreateAuctionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	dto, err := h.svc.CreateAuction(c.Request.Context(), auction.CreateAuctionInput{
		Title:       body.Title,
		Description: body.Description,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
		PaintingIDs: body.PaintingIDs,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// @Summary		Update an auction
// @Description	Partial update. A provided paintingIds list replaces the whole set; moving to Live arms the expiry timer.
// @Tags			Auctions
// @Security		BearerAuth
// @Param			id		path	int					true	"Auction ID"
// @Param			body	body	UpdateAuctionBody	true	"Fields to change"
// @Success		204
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/auctions/{id} [put]
func (h *Handler) update(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	var body UpdateAuctionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	err := h.svc.UpdateAuction(c.Request.Context(), id, auction.UpdateAuctionInput{
		Title:       body.Title,
		Description: body.Description,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
		Status:      body.Status,
		PaintingIDs: body.PaintingIDs,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Delete an auction
// @Description	Deletes an auction together with its lots and bids.
// @Tags			Auctions
// @Security		BearerAuth
// @Param			id	path	int	true	"Auction ID"
// @Success		204
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/auctions/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteAuction(c.Request.Context(), id); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
