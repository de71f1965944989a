package handler

import (
	"fmt"
	"net/http"

	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type ImageServiceInterface interface {
	Attach(auctionID string, meta model.ImageRecord) (model.ImageRecord, error)
	List(auctionID string) ([]model.ImageRecord, error)
}

type ImageHandler struct {
	service ImageServiceInterface
}

func NewImageHandler(service ImageServiceInterface) *ImageHandler {
	return &ImageHandler{service: service}
}

// AttachImageHandler handles POST /auctions/:auction_id/images
func (h *ImageHandler) AttachImageHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AttachImageHandler", err)
		return
	}

	record, err := h.service.Attach(auctionID, model.ImageRecord{
		Location:    req.Location,
		Description: req.Description,
		AddedBy:     req.AddedBy,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("AttachImageHandler: failed to attach image", map[string]any{
			"handler":    "AttachImageHandler",
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, record, "image attached successfully")
	helpers.LogSuccess("AttachImageHandler", "image attached successfully", map[string]any{
		"auction_id": auctionID,
		"image_id":   record.ImageID,
	})
}

// ListImagesHandler handles GET /auctions/:auction_id/images
func (h *ImageHandler) ListImagesHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	records, err := h.service.List(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListImagesHandler: error retrieving images", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if records == nil {
		records = []model.ImageRecord{}
	}

	utils.JSONResponse(c, http.StatusOK, records, "images retrieved successfully")
	helpers.LogSuccess("ListImagesHandler", "images retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(records),
	})
}
