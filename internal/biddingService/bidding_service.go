package bidding

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// maxSettleAttempts bounds the read-validate-write cycle under contention on
// a single auction. After the budget is spent the caller gets ErrContention
// instead of spinning.
const maxSettleAttempts = 5

const monetaryPrecision int32 = 2

// BidService enforces the bidding rule and drives the store's conditional
// atomic update.
type BidService struct {
	store repository.AuctionStore
}

// NewBidService creates a new BidService instance
func NewBidService(store repository.AuctionStore) *BidService {
	return &BidService{
		store: store,
	}
}

// PlaceBid validates a bid against the auction's current price and commits it
// through the store's conditional update. If another bid settles between the
// read and the write, the full cycle is retried so concurrent bidders are
// always judged against a serialized view of the price.
func (s *BidService) PlaceBid(auctionID, bidder string, amount float64) (models.Bid, error) {
	if auctionID == "" || bidder == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidder", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	for attempt := 1; attempt <= maxSettleAttempts; attempt++ {
		auction, err := s.store.GetAuction(auctionID)
		if err != nil {
			return models.Bid{}, fmt.Errorf("service: failed to read auction %s: %w", auctionID, err)
		}

		if !exceedsPrice(amount, auction.CurrentPrice) {
			return models.Bid{}, fmt.Errorf("service: %w - amount must exceed current price %.2f",
				auctionerrors.ErrBidTooLow, auction.CurrentPrice)
		}

		bid := models.Bid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			Bidder:    bidder,
			Amount:    amount,
			CreatedAt: time.Now().UTC(),
		}

		err = s.store.CommitBid(auctionID, auction.CurrentPrice, bid)
		if err == nil {
			return bid, nil
		}
		if errors.Is(err, auctionerrors.ErrStalePrice) {
			utils.Warn("bid lost conditional update, retrying", map[string]any{
				"auction_id": auctionID,
				"bidder":     bidder,
				"attempt":    attempt,
			})
			continue
		}
		return models.Bid{}, fmt.Errorf("service: failed to commit bid for auction %s: %w", auctionID, err)
	}

	return models.Bid{}, fmt.Errorf("service: auction %s still contended after %d attempts: %w",
		auctionID, maxSettleAttempts, auctionerrors.ErrContention)
}

// GetBidHistory returns the auction's accepted bids in acceptance order
func (s *BidService) GetBidHistory(auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return auction.BidHistory, nil
}

// exceedsPrice reports whether amount is strictly above price. The comparison
// runs in decimal space rounded to monetaryPrecision so float noise cannot
// flip an accept/reject decision; an amount exactly equal to the current
// price is rejected.
func exceedsPrice(amount, price float64) bool {
	amountDecimal := decimal.NewFromFloat(amount).Round(monetaryPrecision)
	priceDecimal := decimal.NewFromFloat(price).Round(monetaryPrecision)
	return amountDecimal.GreaterThan(priceDecimal)
}
