package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/utils"
)

// DynamoConfig holds the configuration for a DynamoDB-backed store
type DynamoConfig struct {
	Region   string
	Table    string
	Endpoint string // optional, for local DynamoDB
}

// DynamoStore is an AuctionStore backed by a DynamoDB table keyed by
// auction_id. Conditional writes provide the same serialization guarantees
// as the in-memory store's mutex: a bid commit succeeds only while the
// stored current_price matches the price the caller validated against.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoStore creates a DynamoDB-backed store instance
func NewDynamoStore(ctx context.Context, cfg DynamoConfig) (*DynamoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if cfg.Endpoint != "" {
		// Custom endpoint, e.g. a local DynamoDB container
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.Endpoint, SigningRegion: cfg.Region}, nil
			})
	}

	return &DynamoStore{
		client: dynamodb.NewFromConfig(awsCfg),
		table:  cfg.Table,
	}, nil
}

// CreateAuction assigns a fresh identifier, initializes empty histories and
// persists the document. The insert is guarded against overwriting an
// existing document with the same id.
func (s *DynamoStore) CreateAuction(auction model.Auction) (model.Auction, error) {
	auction.AuctionID = utils.GenerateID()
	auction.CurrentPrice = auction.StartingPrice
	auction.BidHistory = []model.Bid{}
	auction.ImageHistory = []model.ImageRecord{}

	item, err := attributevalue.MarshalMap(auction)
	if err != nil {
		return model.Auction{}, fmt.Errorf("marshal auction: %w", err)
	}

	_, err = s.client.PutItem(context.TODO(), &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(auction_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return model.Auction{}, fmt.Errorf("create auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionExists)
		}
		return model.Auction{}, fmt.Errorf("create auction %s: %v: %w", auction.AuctionID, err, auctionerrors.ErrStorageUnavailable)
	}

	return auction, nil
}

// GetAuction returns the auction with the given id using a consistent read
func (s *DynamoStore) GetAuction(auctionID string) (model.Auction, error) {
	result, err := s.client.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            auctionKey(auctionID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %v: %w", auctionID, err, auctionerrors.ErrStorageUnavailable)
	}
	if len(result.Item) == 0 {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	var auction model.Auction
	if err := attributevalue.UnmarshalMap(result.Item, &auction); err != nil {
		return model.Auction{}, fmt.Errorf("unmarshal auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// ListAuctions scans the full table. Acceptable as the filter fallback; no
// secondary index is required.
func (s *DynamoStore) ListAuctions() ([]model.Auction, error) {
	auctions := []model.Auction{}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.TODO())
		if err != nil {
			return nil, fmt.Errorf("list auctions: %v: %w", err, auctionerrors.ErrStorageUnavailable)
		}

		var batch []model.Auction
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal auctions: %w", err)
		}
		auctions = append(auctions, batch...)
	}

	return auctions, nil
}

// CommitBid sets current_price and appends the bid to bid_history in one
// conditional update. The condition fails either when the document is gone
// or when another bid committed first; a follow-up read disambiguates.
func (s *DynamoStore) CommitBid(auctionID string, expectedPrice float64, bid model.Bid) error {
	bidAttr, err := attributevalue.Marshal(bid)
	if err != nil {
		return fmt.Errorf("marshal bid %s: %w", bid.BidID, err)
	}
	expectedAttr, err := attributevalue.Marshal(expectedPrice)
	if err != nil {
		return fmt.Errorf("marshal expected price: %w", err)
	}
	amountAttr, err := attributevalue.Marshal(bid.Amount)
	if err != nil {
		return fmt.Errorf("marshal bid amount: %w", err)
	}

	_, err = s.client.UpdateItem(context.TODO(), &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 auctionKey(auctionID),
		ConditionExpression: aws.String("attribute_exists(auction_id) AND current_price = :expected"),
		UpdateExpression:    aws.String("SET current_price = :amount, bid_history = list_append(bid_history, :bid)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": expectedAttr,
			":amount":   amountAttr,
			":bid":      &types.AttributeValueMemberL{Value: []types.AttributeValue{bidAttr}},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			if _, getErr := s.GetAuction(auctionID); errors.Is(getErr, auctionerrors.ErrAuctionNotFound) {
				return fmt.Errorf("commit bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
			}
			return fmt.Errorf("commit bid for auction %s: expected price %.2f: %w",
				auctionID, expectedPrice, auctionerrors.ErrStalePrice)
		}
		return fmt.Errorf("commit bid for auction %s: %v: %w", auctionID, err, auctionerrors.ErrStorageUnavailable)
	}

	return nil
}

// AppendImage appends an image record to image_history. No price guard:
// the image path does not contend with bid settlement.
func (s *DynamoStore) AppendImage(auctionID string, record model.ImageRecord) error {
	recordAttr, err := attributevalue.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal image record %s: %w", record.ImageID, err)
	}

	_, err = s.client.UpdateItem(context.TODO(), &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 auctionKey(auctionID),
		ConditionExpression: aws.String("attribute_exists(auction_id)"),
		UpdateExpression:    aws.String("SET image_history = list_append(image_history, :record)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":record": &types.AttributeValueMemberL{Value: []types.AttributeValue{recordAttr}},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("append image for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return fmt.Errorf("append image for auction %s: %v: %w", auctionID, err, auctionerrors.ErrStorageUnavailable)
	}

	return nil
}

func auctionKey(auctionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"auction_id": &types.AttributeValueMemberS{Value: auctionID},
	}
}
