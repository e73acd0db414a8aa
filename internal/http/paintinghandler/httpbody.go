package paintinghandler

import "github.com/shopspring/decimal"

type CreatePaintingBody struct {
	Title        string           `json:"title"        binding:"required" example:"Water Lilies"`
	ArtistID     int64            `json:"artistId"     binding:"required,gt=0"`
	Category     string           `json:"category"     example:"Impressionism"`
	Description  *string          `json:"description"`
	ImageURL     *string          `json:"imageUrl"`
	MinBid       decimal.Decimal  `json:"minBid"       swaggertype:"number" example:"1000.00"`
	Featured     bool             `json:"featured"`
	Year         *int             `json:"year"`
	Medium       *string          `json:"medium"`
	Dimensions   *string          `json:"dimensions"`
	Condition    *string          `json:"condition"`
	EstimateLow  *decimal.Decimal `json:"estimateLow"  swaggertype:"number"`
	EstimateHigh *decimal.Decimal `json:"estimateHigh" swaggertype:"number"`
} // @name CreatePaintingRequest

type UpdatePaintingBody struct {
	Title        *string          `json:"title"`
	ArtistID     *int64           `json:"artistId"     binding:"omitempty,gt=0"`
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	ImageURL     *string          `json:"imageUrl"`
	MinBid       *decimal.Decimal `json:"minBid"       swaggertype:"number"`
	Featured     *bool            `json:"featured"`
	Year         *int             `json:"year"`
	Medium       *string          `json:"medium"`
	Dimensions   *string          `json:"dimensions"`
	Condition    *string          `json:"condition"`
	EstimateLow  *decimal.Decimal `json:"estimateLow"  swaggertype:"number"`
	EstimateHigh *decimal.Decimal `json:"estimateHigh" swaggertype:"number"`
} // @name UpdatePaintingRequest

type ListPaintingsQuery struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	ArtistID *int64 `form:"artistId" binding:"omitempty,gt=0"`
	Featured *bool  `form:"featured"`
} // @name ListPaintingsQuery
