package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/stagebook/pkg/logger"
)

// ErrVerification marks a board that does not serve what was posted.
var ErrVerification = errors.New("verification failed")

// verify reads the board back and checks orderings and membership.
func verify(ctx context.Context, client *HTTPClient, stats *Stats) error {
	log := logger.Get().Named("seeder")
	log.Info(ctx, "verifying board")

	var all listResponse
	if err := client.GetJSON(ctx, "/requirements/?role=organizer", &all); err != nil {
		return fmt.Errorf("organizer view: %w", err)
	}
	stats.Listed = all.Count
	if err := checkContains(all.Items, stats.CreatedIDs); err != nil {
		return err
	}
	if err := checkRecent(all.Items); err != nil {
		return fmt.Errorf("organizer view: %w", err)
	}

	var byBudget listResponse
	if err := client.GetJSON(ctx, "/requirements/?sort=budget-high", &byBudget); err != nil {
		return fmt.Errorf("budget view: %w", err)
	}
	if err := checkBudgetHigh(byBudget.Items); err != nil {
		return err
	}

	var recent listResponse
	if err := client.GetJSON(ctx, "/requirements/?sort=recent", &recent); err != nil {
		return fmt.Errorf("recent view: %w", err)
	}
	if err := checkRecent(recent.Items); err != nil {
		return err
	}

	log.Info(ctx, "board verified", logger.Int("listed", stats.Listed))
	return nil
}

func checkContains(items []Item, ids []string) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("%w: created requirement %s is not listed", ErrVerification, id)
		}
	}
	return nil
}

func checkBudgetHigh(items []Item) error {
	for i := 1; i < len(items); i++ {
		if items[i].Budget > items[i-1].Budget {
			return fmt.Errorf("%w: budget-high out of order at %d (%.0f > %.0f)",
				ErrVerification, i, items[i].Budget, items[i-1].Budget)
		}
	}
	return nil
}

func checkRecent(items []Item) error {
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			return fmt.Errorf("%w: recent out of order at %d", ErrVerification, i)
		}
	}
	return nil
}
