package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// Helper to create a draft auction for the store
func newDraft(category, location string, startingPrice float64) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		Category:      category,
		Location:      location,
		StartTime:     now,
		EndTime:       now.Add(48 * time.Hour),
		StartingPrice: startingPrice,
	}
}

// Helper to create a bid for an auction
func newBid(bidID, auctionID, bidder string, amount float64) model.Bid {
	return model.Bid{
		BidID:     bidID,
		AuctionID: auctionID,
		Bidder:    bidder,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// Test CreateAuction
func TestMemoryStore_CreateAuction(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	stored, err := store.CreateAuction(newDraft("art", "Copenhagen", 100))
	require.NoError(t, err)

	require.NotEmpty(t, stored.AuctionID)
	require.Equal(t, 100.0, stored.CurrentPrice)
	require.Empty(t, stored.BidHistory)
	require.Empty(t, stored.ImageHistory)

	// Stored document is retrievable with identical state
	got, err := store.GetAuction(stored.AuctionID)
	require.NoError(t, err)
	require.Equal(t, stored, got)

	// Fresh ids per creation
	other, err := store.CreateAuction(newDraft("art", "Copenhagen", 100))
	require.NoError(t, err)
	require.NotEqual(t, stored.AuctionID, other.AuctionID)
}

// Test GetAuction
func TestMemoryStore_GetAuction(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	stored, err := store.CreateAuction(newDraft("furniture", "Aarhus", 200))
	require.NoError(t, err)

	tests := []struct {
		name      string
		auctionID string
		wantError bool
	}{
		{name: "existing_auction", auctionID: stored.AuctionID, wantError: false},
		{name: "non_existing_auction", auctionID: "missing", wantError: true},
		{name: "empty_auctionID", auctionID: "", wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := store.GetAuction(tc.auctionID)
			if tc.wantError {
				require.Error(t, err)
				require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
			} else {
				require.NoError(t, err)
				require.Equal(t, stored, got)
			}
		})
	}

	// Idempotence: two reads without mutation return identical results
	t.Run("repeated_reads_identical", func(t *testing.T) {
		t.Parallel()

		first, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		second, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	// Returned copies must not alias the stored document
	t.Run("read_isolation", func(t *testing.T) {
		t.Parallel()

		got, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		got.BidHistory = append(got.BidHistory, newBid("rogue", stored.AuctionID, "nobody", 999))

		again, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		require.Empty(t, again.BidHistory)
	})
}

// Test ListAuctions
func TestMemoryStore_ListAuctions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	auctions, err := store.ListAuctions()
	require.NoError(t, err)
	require.Empty(t, auctions)

	a1, err := store.CreateAuction(newDraft("art", "Copenhagen", 50))
	require.NoError(t, err)
	a2, err := store.CreateAuction(newDraft("cars", "Odense", 5000))
	require.NoError(t, err)

	auctions, err = store.ListAuctions()
	require.NoError(t, err)
	require.ElementsMatch(t, auctions, []model.Auction{a1, a2})
}

// Test CommitBid
func TestMemoryStore_CommitBid(t *testing.T) {
	t.Parallel()

	t.Run("sequential_bids_keep_invariant", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		stored, err := store.CreateAuction(newDraft("art", "Copenhagen", 50))
		require.NoError(t, err)

		// After N accepted bids, current price equals the Nth bid amount and
		// the history has N entries in acceptance order.
		const n = 10
		price := stored.CurrentPrice
		for i := 0; i < n; i++ {
			amount := price + 10
			bid := newBid(fmt.Sprintf("bid-%d", i), stored.AuctionID, fmt.Sprintf("bidder-%d", i), amount)
			require.NoError(t, store.CommitBid(stored.AuctionID, price, bid))
			price = amount
		}

		got, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		require.Len(t, got.BidHistory, n)
		require.Equal(t, got.BidHistory[n-1].Amount, got.CurrentPrice)
		for i := 1; i < n; i++ {
			require.Greater(t, got.BidHistory[i].Amount, got.BidHistory[i-1].Amount)
		}
	})

	t.Run("stale_expected_price_rejected", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		stored, err := store.CreateAuction(newDraft("art", "Copenhagen", 50))
		require.NoError(t, err)

		require.NoError(t, store.CommitBid(stored.AuctionID, 50, newBid("bid1", stored.AuctionID, "alice", 100)))

		// Second caller validated against the pre-update price
		err = store.CommitBid(stored.AuctionID, 50, newBid("bid2", stored.AuctionID, "bob", 105))
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrStalePrice))

		// The losing bid must not appear in the history
		got, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		require.Len(t, got.BidHistory, 1)
		require.Equal(t, 100.0, got.CurrentPrice)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		err := store.CommitBid("missing", 50, newBid("bid1", "missing", "alice", 100))
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
	})

	// Two bids racing with the same expected price: exactly one commits.
	t.Run("concurrent_bids_single_winner", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		stored, err := store.CreateAuction(newDraft("art", "Copenhagen", 50))
		require.NoError(t, err)

		const racers = 50
		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0

		for i := 0; i < racers; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				bid := newBid(fmt.Sprintf("bid-%d", i), stored.AuctionID, fmt.Sprintf("bidder-%d", i), float64(100+i))
				if err := store.CommitBid(stored.AuctionID, 50, bid); err == nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, winners)

		got, err := store.GetAuction(stored.AuctionID)
		require.NoError(t, err)
		require.Len(t, got.BidHistory, 1)
		require.Equal(t, got.BidHistory[0].Amount, got.CurrentPrice)
	})
}

// Test AppendImage
func TestMemoryStore_AppendImage(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	stored, err := store.CreateAuction(newDraft("art", "Copenhagen", 50))
	require.NoError(t, err)

	records := []model.ImageRecord{
		{ImageID: "img1", Location: "blob://a", CreatedAt: time.Now().UTC()},
		{ImageID: "img2", Location: "blob://b", CreatedAt: time.Now().UTC()},
		{ImageID: "img3", Location: "blob://c", CreatedAt: time.Now().UTC()},
	}
	for _, r := range records {
		require.NoError(t, store.AppendImage(stored.AuctionID, r))
	}

	got, err := store.GetAuction(stored.AuctionID)
	require.NoError(t, err)
	require.Equal(t, records, got.ImageHistory)

	err = store.AppendImage("missing", records[0])
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
}
