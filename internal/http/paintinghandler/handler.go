package paintinghandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paintingauction/internal/http/httperr"
	"paintingauction/internal/services/painting"
)

type Handler struct {
	svc painting.IPaintingService
}

func New(svc painting.IPaintingService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(viewer, admin gin.IRoutes) {
	viewer.GET("/paintings", h.list)
	viewer.GET("/paintings/:id", h.info)
	admin.POST("/paintings", h.create)
	admin.PUT("/paintings/:id", h.update)
	admin.DELETE("/paintings/:id", h.delete)
}

// @Summary		List paintings
// @Description	Featured paintings first, then by title.
// @Tags			Paintings
// @Security		BearerAuth
// @Param			q			query		string	false	"Title or artist name contains"
// @Param			category	query		string	false	"Category, \"all\" for every category"
// @Param			artistId	query		int		false	"Artist ID"
// @Param			featured	query		bool	false	"Featured only"
// @Success		200			{array}		painting.PaintingDTO
// @Failure		400			{object}	httperr.ErrorResponse
// @Router			/paintings [get]
func (h *Handler) list(c *gin.Context) {
	var q ListPaintingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	out, err := h.svc.ListPaintings(c.Request.Context(), painting.ListFilter{
		Q:        q.Q,
		Category: q.Category,
		ArtistID: q.ArtistID,
		Featured: q.Featured,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Get a painting
// @Tags			Paintings
// @Security		BearerAuth
// @Param			id	path		int	true	"Painting ID"
// @Success		200	{object}	painting.PaintingDTO
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/paintings/{id} [get]
func (h *Handler) info(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetPainting(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary		Create a painting
// @Tags			Paintings
// @Security		BearerAuth
// @Param			body	body		CreatePaintingBody	true	"Painting payload"
// @Success		201		{object}	painting.PaintingDTO
// @Failure		400		{object}	httperr.ErrorResponse
// @Router			/paintings [post]
func (h *Handler) create(c *gin.Context) {
	var body CreatePaintingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	dto, err := h.svc.CreatePainting(c.Request.Context(), painting.CreatePaintingInput(body))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// @Summary		Update a painting
// @Description	Partial update; omitted fields keep their value.
// @Tags			Paintings
// @Security		BearerAuth
// @Param			id		path	int					true	"Painting ID"
// @Param			body	body	UpdatePaintingBody	true	"Fields to change"
// @Success		204
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/paintings/{id} [put]
func (h *Handler) update(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	var body UpdatePaintingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	if err := h.svc.UpdatePainting(c.Request.Context(), id, painting.UpdatePaintingInput(body)); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Delete a painting
// @Tags			Paintings
// @Security		BearerAuth
// @Param			id	path	int	true	"Painting ID"
// @Success		204
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/paintings/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePainting(c.Request.Context(), id); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
