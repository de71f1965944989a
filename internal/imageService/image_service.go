package images

import (
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// Ledger maintains the append-only association between an auction and its
// image metadata records. Byte storage lives behind an external blob service;
// the ledger only records the opaque location reference.
type Ledger struct {
	store repository.AuctionStore
}

// NewLedger creates a new Ledger instance
func NewLedger(store repository.AuctionStore) *Ledger {
	return &Ledger{
		store: store,
	}
}

// Attach assigns a fresh id and timestamp to the metadata and appends the
// record to the auction's image history. Prior entries are never replaced.
func (l *Ledger) Attach(auctionID string, meta models.ImageRecord) (models.ImageRecord, error) {
	if auctionID == "" {
		return models.ImageRecord{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidImage)
	}
	if meta.Location == "" {
		return models.ImageRecord{}, fmt.Errorf("service: %w - missing location reference", auctionerrors.ErrInvalidImage)
	}

	record := models.ImageRecord{
		ImageID:     utils.GenerateID(),
		Location:    meta.Location,
		Description: meta.Description,
		AddedBy:     meta.AddedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := l.store.AppendImage(auctionID, record); err != nil {
		return models.ImageRecord{}, fmt.Errorf("service: failed to attach image to auction %s: %w", auctionID, err)
	}

	return record, nil
}

// List returns the auction's image records in attachment order
func (l *Ledger) List(auctionID string) ([]models.ImageRecord, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidImage)
	}

	auction, err := l.store.GetAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list images for auction %s: %w", auctionID, err)
	}

	return auction.ImageHistory, nil
}
