package auctionhandler

import "time"

type CreateAuctionBody struct {
	Title       string    `json:"title"       binding:"required"  example:"Spring Impressionists"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"startsAtUtc" binding:"required"  example:"2026-05-01T10:00:00Z"`
	EndsAt      time.Time `json:"endsAtUtc"   binding:"required"  example:"2026-05-01T18:00:00Z"`
	PaintingIDs []int64   `json:"paintingIds" binding:"dive,gt=0"`
} // @name CreateAuctionRequest

type UpdateAuctionBody struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"startsAtUtc"`
	EndsAt      *time.Time `json:"endsAtUtc"`
	Status      *string    `json:"status"      example:"Live"`
	PaintingIDs *[]int64   `json:"paintingIds"`
} // @name UpdateAuctionRequest

type ListAuctionsQuery struct {
	Q      string `form:"q"`
	Status string `form:"status"`
} // @name ListAuctionsQuery
