package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/transactions"
)

// TransactionOptions фильтры команды transactions
type TransactionOptions struct {
	Date     string
	Refresh  bool
	Clear    bool
	Location *time.Location
}

func (c *Cli) runTransactions(ctx context.Context, opts TransactionOptions) error {
	if opts.Clear {
		if err := c.transactions.Invalidate(ctx); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		c.io.Println("✓ Transaction cache cleared")
		return nil
	}

	res, err := c.transactions.Get(ctx, opts.Refresh)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	txs := res.Transactions
	if opts.Date != "" {
		txs = transactions.FilterByDate(txs, opts.Date, loc)
	}
	stats := transactions.CalculateStats(txs)

	if c.jsonOutput {
		return c.printJSON(struct {
			*transactions.Result
			Stats transactions.Stats `json:"stats"`
		}{Result: &transactions.Result{
			LastUpdated:  res.LastUpdated,
			Source:       res.Source,
			Transactions: txs,
			Stale:        res.Stale,
		}, Stats: stats})
	}

	c.io.Println("=== Transactions ===")
	if res.Source == transactions.SourceOffline {
		c.io.Printf("⚠️  Offline data from %s", res.LastUpdated.In(loc).Format(time.DateTime))
		if res.Stale {
			c.io.Printf(" (%s old)", c.now().Sub(res.LastUpdated).Round(time.Second))
		}
		c.io.Println()
	}
	c.io.Println()

	if len(txs) == 0 {
		c.io.Println("No transactions found.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(c.io)
	tw.AppendHeader(table.Row{"Time", "ID", "Order", "Method", "Status", "Amount"})
	for _, tx := range txs {
		status := tx.Status
		if transactions.IsRefund(tx) {
			status = "refund"
		}
		tw.AppendRow(table.Row{
			tx.CreatedAt.In(loc).Format(time.DateTime), tx.ID, dash(tx.OrderNumber),
			dash(tx.PaymentMethod), dash(status), fmt.Sprintf("%.2f", tx.Amount),
		})
	}
	tw.Render()

	c.io.Println()
	c.io.Printf("Count:   %d (%d refunds)\n", stats.Count, stats.RefundCount)
	c.io.Printf("Revenue: %.2f\n", stats.TotalAmount)
	c.io.Printf("Refunds: %.2f\n", stats.RefundAmount)

	buckets := make([]string, 0, len(stats.ByStatus))
	for b := range stats.ByStatus {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)
	for _, b := range buckets {
		c.io.Printf("  %-10s %d\n", b+":", stats.ByStatus[b])
	}
	return nil
}
