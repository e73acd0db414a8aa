package ws

import (
	"encoding/json"

	"paintingauction/internal/services/auction"
	"paintingauction/internal/services/bidding"
)

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "auctions/bid_placed"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

const (
	eventSnapshot = "auctions/snapshot"
	eventError    = "error"
)

// SnapshotBody is sent once when a client joins an auction room.
type SnapshotBody struct {
	Auction *auction.AuctionDTO     `json:"auction"`
	Lots    []bidding.LotSummaryDTO `json:"lots"`
}

// ErrorBody is returned for failures.
type ErrorBody struct {
	Error string `json:"error"`
}
