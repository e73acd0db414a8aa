package paintinghandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/services/painting"
)

type fakePaintingService struct {
	painting.IPaintingService

	gotFilter painting.ListFilter
	gotCreate painting.CreatePaintingInput
	gotUpdate painting.UpdatePaintingInput
	gotID     int64
	err       error
}

func (f *fakePaintingService) ListPaintings(_ context.Context, flt painting.ListFilter) ([]painting.PaintingDTO, error) {
	f.gotFilter = flt
	return []painting.PaintingDTO{{ID: 3, Title: "Water Lilies", ArtistName: "Claude Monet", MinBid: decimal.RequireFromString("1000")}}, f.err
}

func (f *fakePaintingService) GetPainting(_ context.Context, id int64) (*painting.PaintingDTO, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return &painting.PaintingDTO{ID: id, Title: "Water Lilies", MinBid: decimal.RequireFromString("1000.5")}, nil
}

func (f *fakePaintingService) CreatePainting(_ context.Context, in painting.CreatePaintingInput) (*painting.PaintingDTO, error) {
	f.gotCreate = in
	if f.err != nil {
		return nil, f.err
	}
	return &painting.PaintingDTO{ID: 12, Title: in.Title, ArtistID: in.ArtistID, MinBid: in.MinBid}, nil
}

func (f *fakePaintingService) UpdatePainting(_ context.Context, id int64, in painting.UpdatePaintingInput) error {
	f.gotID, f.gotUpdate = id, in
	return f.err
}

func (f *fakePaintingService) DeletePainting(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

func newRouter(svc painting.IPaintingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(svc).Register(r, r)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	svc := &fakePaintingService{}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/paintings?q=lil&category=all&artistId=2&featured=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lil", svc.gotFilter.Q)
	assert.Equal(t, "all", svc.gotFilter.Category)
	require.NotNil(t, svc.gotFilter.ArtistID)
	assert.Equal(t, int64(2), *svc.gotFilter.ArtistID)
	require.NotNil(t, svc.gotFilter.Featured)
	assert.True(t, *svc.gotFilter.Featured)

	w = do(r, http.MethodGet, "/paintings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.gotFilter.ArtistID)
	assert.Nil(t, svc.gotFilter.Featured)

	w = do(r, http.MethodGet, "/paintings?featured=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInfo(t *testing.T) {
	svc := &fakePaintingService{}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/paintings/3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out painting.PaintingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.MinBid.Equal(decimal.RequireFromString("1000.5")))

	svc.err = apperrors.NotFound("painting")
	w = do(r, http.MethodGet, "/paintings/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate(t *testing.T) {
	svc := &fakePaintingService{}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/paintings", `{"title":"Water Lilies","artistId":2,"minBid":1000,"estimateLow":"900","estimateHigh":1500.5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(2), svc.gotCreate.ArtistID)
	assert.True(t, svc.gotCreate.MinBid.Equal(decimal.RequireFromString("1000")))
	require.NotNil(t, svc.gotCreate.EstimateHigh)
	assert.Equal(t, "1500.5", svc.gotCreate.EstimateHigh.String())

	w = do(r, http.MethodPost, "/paintings", `{"artistId":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/paintings", `{"title":"No artist"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = apperrors.Invalid("artist not found")
	w = do(r, http.MethodPost, "/paintings", `{"title":"Ghost","artistId":99}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"artist not found"}`, w.Body.String())
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &fakePaintingService{}
	r := newRouter(svc)

	w := do(r, http.MethodPut, "/paintings/3", `{"featured":true,"minBid":"1200.00"}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(3), svc.gotID)
	require.NotNil(t, svc.gotUpdate.Featured)
	assert.True(t, *svc.gotUpdate.Featured)
	assert.Nil(t, svc.gotUpdate.Title)

	w = do(r, http.MethodDelete, "/paintings/3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.err = apperrors.NotFound("painting")
	w = do(r, http.MethodDelete, "/paintings/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
