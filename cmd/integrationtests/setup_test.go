package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	auction "auction-house/internal/auctionService"
	bidding "auction-house/internal/biddingService"
	images "auction-house/internal/imageService"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/server"
)

// stubPublisher stands in for the message broker so the full HTTP stack can
// run without RabbitMQ. A non-nil err simulates a delivery failure.
type stubPublisher struct {
	err       error
	published []model.Auction
}

func (p *stubPublisher) PublishAuctionCreated(_ context.Context, a model.Auction) error {
	p.published = append(p.published, a)
	return p.err
}

// SetupTestRouter initializes the router over the in-memory store for
// integration testing. publishErr configures the stub publisher outcome.
func SetupTestRouter(publishErr error) (*gin.Engine, *stubPublisher) {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	publisher := &stubPublisher{err: publishErr}

	auctionService := auction.NewAuctionService(store, publisher)
	bidService := bidding.NewBidService(store)
	ledger := images.NewLedger(store)

	router := server.SetupRouter(auctionService, bidService, ledger, "")
	return router, publisher
}

// SetupGatedTestRouter is SetupTestRouter with the auth gate enabled
func SetupGatedTestRouter(apiToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	auctionService := auction.NewAuctionService(store, &stubPublisher{})
	bidService := bidding.NewBidService(store)
	ledger := images.NewLedger(store)

	return server.SetupRouter(auctionService, bidService, ledger, apiToken)
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the JSON
// envelope, returning the data payload for successful responses.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := ExecuteRequest(t, router, method, url, body)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if data, ok := resp["data"].(map[string]any); ok && w.Code < 300 {
			return data, w
		}
	}

	return resp, w
}
