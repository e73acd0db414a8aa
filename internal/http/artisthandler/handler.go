package artisthandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paintingauction/internal/http/httperr"
	"paintingauction/internal/services/artist"
)

type Handler struct {
	svc artist.IArtistService
}

func New(svc artist.IArtistService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(viewer, admin gin.IRoutes) {
	viewer.GET("/artists", h.list)
	viewer.GET("/artists/:id", h.info)
	admin.POST("/artists", h.create)
	admin.PUT("/artists/:id", h.update)
	admin.DELETE("/artists/:id", h.delete)
}

// @Summary		List artists
// @Description	Trending artists first, then by name.
// @Tags			Artists
// @Security		BearerAuth
// @Param			q			query		string	false	"Name or bio contains"
// @Param			style		query		string	false	"Style"
// @Param			nationality	query		string	false	"Nationality"
// @Param			verified	query		bool	false	"Verified only"
// @Param			trending	query		bool	false	"Trending only"
// @Success		200			{array}		artist.ArtistDTO
// @Failure		400			{object}	httperr.ErrorResponse
// @Router			/artists [get]
func (h *Handler) list(c *gin.Context) {
	var q ListArtistsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	out, err := h.svc.ListArtists(c.Request.Context(), artist.ListFilter(q))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Get an artist
// @Tags			Artists
// @Security		BearerAuth
// @Param			id	path		int	true	"Artist ID"
// @Success		200	{object}	artist.ArtistDTO
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/artists/{id} [get]
func (h *Handler) info(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetArtist(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary		Create an artist
// @Tags			Artists
// @Security		BearerAuth
// @Param			body	body		ArtistBody	true	"Artist payload"
// @Success		201		{object}	artist.ArtistDTO
// @Failure		400		{object}	httperr.ErrorResponse
// @Router			/artists [post]
func (h *Handler) create(c *gin.Context) {
	var body ArtistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	dto, err := h.svc.CreateArtist(c.Request.Context(), artist.ArtistInput(body))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// @Summary		Update an artist
// @Tags			Artists
// @Security		BearerAuth
// @Param			id		path	int			true	"Artist ID"
// @Param			body	body	ArtistBody	true	"Fields to change"
// @Success		204
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/artists/{id} [put]
func (h *Handler) update(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	var body ArtistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	if err := h.svc.UpdateArtist(c.Request.Context(), id, artist.ArtistInput(body)); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Delete an artist
// @Description	Fails with 409 while paintings still reference the artist.
// @Tags			Artists
// @Security		BearerAuth
// @Param			id	path	int	true	"Artist ID"
// @Success		204
// @Failure		404	{object}	httperr.ErrorResponse
// @Failure		409	{object}	httperr.ErrorResponse
// @Router			/artists/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	id, ok := httperr.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteArtist(c.Request.Context(), id); err != nil {
		httperr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
