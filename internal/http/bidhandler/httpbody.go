package bidhandler

import "github.com/shopspring/decimal"

type PlaceBidBody struct {
	Amount *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"1500.01"`
} // @name PlaceBidRequest

type PaintingBidsQuery struct {
	AuctionID *int64 `form:"auctionId" binding:"omitempty,gt=0"`
	Sort      string `form:"sort"      binding:"omitempty,oneof=time amount"`
	Dir       string `form:"dir"       binding:"omitempty,oneof=asc desc"`
} // @name PaintingBidsQuery
