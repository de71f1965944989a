// Package filter evaluates composable optional predicates over the full
// auction collection. Each present criterion narrows the result via logical
// AND; absent criteria impose no constraint.
package filter

import (
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
)

// Validate rejects malformed bounds before any auction is inspected
func Validate(criteria models.FilterCriteria) error {
	if criteria.MinPrice != nil && criteria.MaxPrice != nil && *criteria.MinPrice > *criteria.MaxPrice {
		return fmt.Errorf("filter: min price %.2f above max price %.2f: %w",
			*criteria.MinPrice, *criteria.MaxPrice, auctionerrors.ErrInvalidFilter)
	}
	if criteria.DateFrom != nil && criteria.DateTo != nil && criteria.DateFrom.After(*criteria.DateTo) {
		return fmt.Errorf("filter: date from after date to: %w", auctionerrors.ErrInvalidFilter)
	}
	return nil
}

// Apply returns the auctions matching every present criterion. A criteria
// value with no fields set returns the full input.
func Apply(auctions []models.Auction, criteria models.FilterCriteria) []models.Auction {
	matched := make([]models.Auction, 0, len(auctions))
	for _, a := range auctions {
		if matches(a, criteria) {
			matched = append(matched, a)
		}
	}
	return matched
}

func matches(a models.Auction, c models.FilterCriteria) bool {
	if c.Category != "" && a.Category != c.Category {
		return false
	}
	if c.Location != "" && a.Location != c.Location {
		return false
	}
	// Price bounds are inclusive on the current price.
	if c.MinPrice != nil && a.CurrentPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && a.CurrentPrice > *c.MaxPrice {
		return false
	}
	if c.DateFrom != nil && a.StartTime.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && a.EndTime.After(*c.DateTo) {
		return false
	}
	return true
}
