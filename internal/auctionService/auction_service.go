package auction

import (
	"context"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/filter"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// EventPublisher notifies downstream consumers of new auctions
type EventPublisher interface {
	PublishAuctionCreated(ctx context.Context, auction models.Auction) error
}

// AuctionService owns the auction lifecycle: creation with event emission,
// reads and multi-criteria filtering.
type AuctionService struct {
	store     repository.AuctionStore
	publisher EventPublisher
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore, publisher EventPublisher) *AuctionService {
	return &AuctionService{
		store:     store,
		publisher: publisher,
	}
}

// CreateOutcome carries the stored auction together with the event delivery
// result. Creation and publication are not transactionally linked: a failed
// publish leaves the auction stored and visible, and PublishErr lets the
// caller decide on compensating action.
type CreateOutcome struct {
	Auction    models.Auction
	PublishErr error
}

// CreateAuction validates the draft, persists it through the record store and
// publishes the auctions.create event with the full creation-time snapshot.
func (s *AuctionService) CreateAuction(ctx context.Context, draft models.Auction) (CreateOutcome, error) {
	if err := s.validateDraft(draft); err != nil {
		return CreateOutcome{}, err
	}

	stored, err := s.store.CreateAuction(draft)
	if err != nil {
		return CreateOutcome{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	publishErr := s.publisher.PublishAuctionCreated(ctx, stored)
	if publishErr != nil {
		utils.Error("auction created but event delivery failed", map[string]any{
			"auction_id": stored.AuctionID,
			"error":      publishErr.Error(),
		})
	}

	return CreateOutcome{Auction: stored, PublishErr: publishErr}, nil
}

// validateDraft checks input validity for auction creation
func (s *AuctionService) validateDraft(draft models.Auction) error {
	if draft.Category == "" || draft.Location == "" {
		return fmt.Errorf("service: %w - missing category or location", auctionerrors.ErrInvalidAuction)
	}
	if draft.StartingPrice <= 0 {
		return fmt.Errorf("service: %w - non-positive starting price", auctionerrors.ErrInvalidAuction)
	}
	if !draft.EndTime.After(draft.StartTime) {
		return fmt.Errorf("service: %w - end time must be after start time", auctionerrors.ErrInvalidAuction)
	}
	return nil
}

// GetAuction returns the auction with the given id
func (s *AuctionService) GetAuction(auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}

	return auction, nil
}

// ListAuctions returns all auctions in no guaranteed order
func (s *AuctionService) ListAuctions() ([]models.Auction, error) {
	auctions, err := s.store.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	return auctions, nil
}

// FilterAuctions evaluates the criteria over a full snapshot of the
// collection and returns the matching subset.
func (s *AuctionService) FilterAuctions(criteria models.FilterCriteria) ([]models.Auction, error) {
	if err := filter.Validate(criteria); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	auctions, err := s.store.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions for filter: %w", err)
	}

	return filter.Apply(auctions, criteria), nil
}
