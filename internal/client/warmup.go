package client

import (
	"context"

	"school-store/internal/domain/dto"

	"golang.org/x/sync/errgroup"
)

// DashboardSnapshot is everything a dashboard needs on first paint.
type DashboardSnapshot struct {
	User         dto.UserDTO
	Items        []dto.ItemDTO
	Transactions dto.TransactionsPage
}

// LoadDashboard fetches identity, catalog, and transaction history in
// parallel. These are independent reads, so fan-out is safe here; batch
// mutations (purchase, award) stay strictly sequential.
func LoadDashboard(ctx context.Context, api *Client) (DashboardSnapshot, error) {
	var snapshot DashboardSnapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := api.Me(ctx)
		if err != nil {
			return err
		}
		snapshot.User = user
		return nil
	})

	g.Go(func() error {
		items, err := api.ListItems(ctx)
		if err != nil {
			return err
		}
		snapshot.Items = items
		return nil
	})

	g.Go(func() error {
		transactions, err := api.ListTransactions(ctx, 1)
		if err != nil {
			return err
		}
		snapshot.Transactions = transactions
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardSnapshot{}, err
	}

	return snapshot, nil
}
