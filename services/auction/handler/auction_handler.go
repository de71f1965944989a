package handler

import (
	"context"
	"fmt"
	"net/http"

	auction "auction-house/internal/auctionService"
	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, draft model.Auction) (auction.CreateOutcome, error)
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	FilterAuctions(criteria model.FilterCriteria) ([]model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	draft := model.Auction{
		Category:      req.Category,
		Location:      req.Location,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StartingPrice: req.StartingPrice,
	}

	outcome, err := h.service.CreateAuction(c.Request.Context(), draft)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler":  "CreateAuctionHandler",
			"category": req.Category,
			"error":    err.Error(),
		})
		return
	}

	resp := helpers.CreateAuctionResponse{Auction: outcome.Auction}
	if outcome.PublishErr != nil {
		resp.PublishWarning = "auction created but event delivery failed"
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": outcome.Auction.AuctionID,
		"category":   outcome.Auction.Category,
		"published":  outcome.PublishErr == nil,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": a.AuctionID,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListAuctions()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionsHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(auctions),
	})
}

// FilterAuctionsHandler handles POST /auctions/filter
func (h *AuctionHandler) FilterAuctionsHandler(c *gin.Context) {
	var criteria model.FilterCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		helpers.HandleBindError(c, "FilterAuctionsHandler", err)
		return
	}

	auctions, err := h.service.FilterAuctions(criteria)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("FilterAuctionsHandler: error filtering auctions", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions filtered successfully")
	helpers.LogSuccess("FilterAuctionsHandler", "auctions filtered successfully", map[string]any{
		"count": len(auctions),
	})
}
