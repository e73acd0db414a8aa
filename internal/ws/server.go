package ws

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/http/httperr"
	"paintingauction/internal/services/auction"
	"paintingauction/internal/services/bidding"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 12 * time.Second
	pingPeriod = 3 * time.Second // must be < pongWait

	joinTimeout = 4 * time.Second
)

const readOnlyMessage = "this feed is read-only, place bids over the REST API"

type WsServer struct {
	hub        *Hub
	feed       Feed
	upgrader   websocket.Upgrader
	auctionSvc auction.IAuctionService
	bidSvc     bidding.IBidService
}

// NewWsServer builds the live feed endpoint. allowedOrigins follows the CORS
// setting; "*" or an empty list admits every origin.
func NewWsServer(h *Hub, feed Feed, auctionSvc auction.IAuctionService, bidSvc bidding.IBidService, allowedOrigins []string) *WsServer {
	return &WsServer{
		hub:  h,
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		auctionSvc: auctionSvc,
		bidSvc:     bidSvc,
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// @Summary		Live bid feed
// @Description	Upgrades to a read-only websocket streaming bid and auction events of one auction.
// @Tags			Live
// @Param			auction_id	query	int	true	"Auction ID"
// @Success		101
// @Failure		400	{object}	httperr.ErrorResponse
// @Failure		404	{object}	httperr.ErrorResponse
// @Router			/ws [get]
func (s *WsServer) Handle(ginCtx *gin.Context) {
	auctionID, err := strconv.ParseInt(ginCtx.Query("auction_id"), 10, 64)
	if err != nil || auctionID <= 0 {
		ginCtx.JSON(http.StatusBadRequest, httperr.ErrorResponse{Error: "auction_id is required"})
		return
	}

	if _, err := s.auctionSvc.GetAuction(ginCtx.Request.Context(), auctionID); err != nil {
		httperr.Write(ginCtx, err)
		return
	}

	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws_accept", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(512)

	// Listen before reading the standings; events that race the read are
	// held and delivered right after the snapshot.
	wsConn := newClientConn(rawConn)
	wsConn.hold()
	s.hub.Join(auctionID, wsConn)

	ctx, cancel := context.WithTimeout(context.Background(), joinTimeout)
	defer cancel()
	s.feed.Subscribe(ctx, auctionID)

	snapshot, err := s.snapshot(ctx, auctionID)
	if err != nil {
		zap.L().Warn("ws_snapshot", zap.Int64("auction_id", auctionID), zap.Error(err))
		_ = wsConn.release(gin.H{"event": eventError, "body": ErrorBody{Error: "snapshot unavailable"}})
		s.hub.Leave(auctionID, wsConn)
		s.feed.Unsubscribe(auctionID)
		return
	}
	if err := wsConn.release(gin.H{"event": eventSnapshot, "body": snapshot}); err != nil {
		zap.L().Warn("ws_snapshot_write", zap.Int64("auction_id", auctionID), zap.Error(err))
	}

	done := make(chan struct{})
	go s.reader(auctionID, wsConn, done)
	go s.pinger(wsConn, done)
}

// snapshot reports the auction and the current standing of every lot.
func (s *WsServer) snapshot(ctx context.Context, auctionID int64) (*SnapshotBody, error) {
	dto, err := s.auctionSvc.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	snap := &SnapshotBody{Auction: dto, Lots: make([]bidding.LotSummaryDTO, 0, len(dto.PaintingIDs))}
	for _, pid := range dto.PaintingIDs {
		lot, err := s.bidSvc.HighestBid(ctx, auctionID, pid)
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrPaintingNotInAuction) {
			// removed between the two reads
			continue
		}
		if err != nil {
			return nil, err
		}
		snap.Lots = append(snap.Lots, *lot)
	}
	return snap, nil
}

// reader drains the connection so control frames get processed. Clients
// cannot act through the feed, so every data frame earns an error reply.
func (s *WsServer) reader(auctionID int64, conn *clientConn, done chan struct{}) {
	defer func() {
		close(done)
		s.hub.Leave(auctionID, conn)
		s.feed.Unsubscribe(auctionID)
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.rawConn.ReadMessage(); err != nil {
			return
		}
		_ = conn.writeJSON(gin.H{
			"event": eventError,
			"body":  ErrorBody{Error: readOnlyMessage},
		})
	}
}

func (s *WsServer) pinger(conn *clientConn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				conn.close()
				return
			}
		}
	}
}
