package artisthandler

import "github.com/shopspring/decimal"

// ArtistBody serves both create and update; on update omitted fields keep
// their value.
type ArtistBody struct {
	Name         *string          `json:"name"         example:"Claude Monet"`
	Bio          *string          `json:"bio"`
	Image        *string          `json:"image"`
	Nationality  *string          `json:"nationality"  example:"French"`
	BirthYear    *int             `json:"birthYear"    binding:"omitempty,gte=0,lte=3000"`
	Style        *string          `json:"style"        example:"Impressionism"`
	Verified     *bool            `json:"verified"`
	Trending     *bool            `json:"trending"`
	TotalSales   *decimal.Decimal `json:"totalSales"   swaggertype:"number"`
	AveragePrice *decimal.Decimal `json:"averagePrice" swaggertype:"number"`
} // @name ArtistRequest

type ListArtistsQuery struct {
	Q           string `form:"q"`
	Style       string `form:"style"`
	Nationality string `form:"nationality"`
	Verified    *bool  `form:"verified"`
	Trending    *bool  `form:"trending"`
} // @name ListArtistsQuery
