package bidhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paintingauction/internal/http/httperr"
	"paintingauction/internal/http/middleware"
	"paintingauction/internal/services/bidding"
)

type Handler struct {
	svc bidding.IBidService
}

func New(svc bidding.IBidService) *Handler { return &Handler{svc: svc} }

// Register mounts the bid routes. viewer must admit Admins and Bidders,
// admin only Admins.
func (h *Handler) Register(viewer, admin gin.IRoutes) {
	viewer.GET("/auctions/:id/paintings/:paintingId/bids", h.list)
	viewer.POST("/auctions/:id/paintings/:paintingId/bids", h.place)
	viewer.GET("/auctions/:id/paintings/:paintingId/bids/highest", h.highest)
	viewer.DELETE("/auctions/:id/paintings/:paintingId/bids/:bidId", h.deleteScoped)
	viewer.GET("/paintings/:id/bids", h.paintingHistory)
	admin.DELETE("/bids/:id", h.delete)
}

func lotParams(c *gin.Context) (auctionID, paintingID int64, ok bool) {
	if auctionID, ok = httperr.ParamID(c, "id"); !ok {
		return 0, 0, false
	}
	if paintingID, ok = httperr.ParamID(c, "paintingId"); !ok {
		return 0, 0, false
	}
	return auctionID, paintingID, true
}

// @Summary		List bids on a lot
// @Description	Bids for one painting in one auction, highest first.
// @Tags			Bids
// @Security		BearerAuth
// @Param			id			path		int	true	"Auction ID"
// @Param			paintingId	path		int	true	"Painting ID"
// @Success		200			{array}		bidding.BidDTO
// @Failure		400			{object}	httperr.ErrorResponse
// @Failure		404			{object}	httperr.ErrorResponse
// @Router			/auctions/{id}/paintings/{paintingId}/bids [get]
func (h *Handler) list(c *gin.Context) {
	auctionID, paintingID, ok := lotParams(c)
	if !ok {
		return
	}
	out, err := h.svc.ListBids(c.Request.Context(), auctionID, paintingID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Place a bid
// @Description	Places a bid on a painting in a live auction. The amount must reach max(minBid, highest + 0.01).
// @Tags			Bids
// @Security		BearerAuth
// @Param			id			path		int				true	"Auction ID"
// @Param			paintingId	path		int				true	"Painting ID"
// @Param			body		body		PlaceBidBody	true	"Bid payload"
// @Success		201			{object}	bidding.BidDTO
// @Failure		400			{object}	httperr.ErrorResponse
// @Failure		401			{object}	httperr.ErrorResponse
// @Failure		404			{object}	httperr.ErrorResponse
// @Router			/auctions/{id}/paintings/{paintingId}/bids [post]
func (h *Handler) place(c *gin.Context) {
	auctionID, paintingID, ok := lotParams(c)
	if !ok {
		return
	}
	var body PlaceBidBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)

	bid, err := h.svc.PlaceBid(c.Request.Context(), id, auctionID, paintingID, *body.Amount)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

// @Summary		Highest bid on a lot
// @Description	Current standing of a lot, computed from its bids at request time.
// @Tags			Bids
// @Security		BearerAuth
// @Param			id			path		int	true	"Auction ID"
// @Param			paintingId	path		int	true	"Painting ID"
// @Success		200			{object}	bidding.LotSummaryDTO
// @Failure		400			{object}	httperr.ErrorResponse
// @Failure		404			{object}	httperr.ErrorResponse
// @Router			/auctions/{id}/paintings/{paintingId}/bids/highest [get]
func (h *Handler) highest(c *gin.Context) {
	auctionID, paintingID, ok := lotParams(c)
	if !ok {
		return
	}
	out, err := h.svc.HighestBid(c.Request.Context(), auctionID, paintingID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Withdraw a bid
// @Description	Bidders may delete their own bids and admins any bid, unless the auction has ended.
// @Tags			Bids
// @Security		BearerAuth
// @Param			id			path	int	true	"Auction ID"
// @Param			paintingId	path	int	true	"Painting ID"
// @Param			bidId		path	int	true	"Bid ID"
// @Success		204
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		403	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/auctions/{id}/paintings/{paintingId}/bids/{bidId} [delete]
func (h *Handler) deleteScoped(c *gin.Context) {
	auctionID, paintingID, ok := lotParams(c)
	if !ok {
		return
	}
	bidID, ok := httperr.ParamID(c, "bidId")
	if !ok {
		return
	}
	id, _ := middleware.IdentityFrom(c)

	if err := h.svc.DeleteScopedBid(c.Request.Context(), id, auctionID, paintingID, bidID); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Bid history of a painting
// @Description	Bids on a painting across all auctions.
// @Tags			Bids
// @Security		BearerAuth
// @Param			id			path		int		true	"Painting ID"
// @Param			auctionId	query		int		false	"Only bids from this auction"
// @Param			sort		query		string	false	"Sort key"		Enums(time,amount)	default(time)
// @Param			dir			query		string	false	"Sort direction"	Enums(asc,desc)		default(desc)
// @Success		200			{array}		bidding.BidDTO
// @Failure		400			{object}	httperr.ErrorResponse
// @Failure		404			{object}	httperr.ErrorResponse
// @Router			/paintings/{id}/bids [get]
func (h *Handler) paintingHistory(c *gin.Context) {
	paintingID, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	var q PaintingBidsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	out, err := h.svc.ListPaintingBids(c.Request.Context(), paintingID, bidding.PaintingBidsFilter{
		AuctionID: q.AuctionID,
		Sort:      q.Sort,
		Dir:       q.Dir,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Delete any bid
// @Description	Admin removal of a bid by id, unless its auction has ended.
// @Tags			Bids
// @Security		BearerAuth
// @Param			id	path	int	true	"Bid ID"
// @Success		204
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		403	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/bids/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	bidID, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	id, _ := middleware.IdentityFrom(c)

	if err := h.svc.DeleteBid(c.Request.Context(), id, bidID); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
