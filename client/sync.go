package client

import (
	"context"
	"log"

	"github.com/rutdvaj/fastbite/localcart"
)

// SyncOnLogin reconciles the anonymous local cart into the server cart
// right after a login succeeds. An empty local cart syncs trivially
// with no network call. The local cart is cleared only once the merge
// is confirmed; on failure it is left untouched so a retry loses
// nothing. The error is reported but should not abort the login flow.
func SyncOnLogin(ctx context.Context, c *Client, store *localcart.Store) error {
	items := store.Items()
	if len(items) == 0 {
		return nil
	}

	if err := c.MergeCart(ctx, items); err != nil {
		log.Printf("cart sync failed, local cart retained: %v", err)
		return err
	}

	store.Clear()
	return nil
}
