package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/data"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// OrderOptions описывает новый заказ из флагов командной строки
type OrderOptions struct {
	CustomerName     string
	CustomerPhone    string
	DeliveryType     string
	DeliveryLocation string
	Notes            string
	Items            []string
}

// UpdateOptions задает изменения заказа; nil поля не меняются
type UpdateOptions struct {
	Status *string
	Notes  *string
	Items  []string
}

// ParseItem разбирает "name:quantity:unit_price". Числовое имя считается
// id позиции меню.
func ParseItem(s string) (models.OrderItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return models.OrderItem{}, fmt.Errorf("invalid item %q, expected name:quantity:price", s)
	}

	name := strings.TrimSpace(parts[0])
	qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid quantity in %q: %w", s, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid price in %q: %w", s, err)
	}

	item := models.OrderItem{Name: name, Quantity: qty, UnitPrice: price}
	if id, err := strconv.ParseInt(name, 10, 64); err == nil {
		item = models.OrderItem{MenuItem: id, Quantity: qty, UnitPrice: price}
	}
	return item, nil
}

func parseItems(specs []string) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(specs))
	for _, s := range specs {
		item, err := ParseItem(s)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Cli) runOrderCreate(ctx context.Context, opts OrderOptions) error {
	items, err := parseItems(opts.Items)
	if err != nil {
		return err
	}

	deliveryType := opts.DeliveryType
	if deliveryType == "" {
		deliveryType = models.DeliveryPickup
	}

	order := &models.Order{
		CustomerName:     opts.CustomerName,
		CustomerPhone:    opts.CustomerPhone,
		DeliveryType:     deliveryType,
		DeliveryLocation: opts.DeliveryLocation,
		Notes:            opts.Notes,
		Items:            items,
	}

	local, err := c.dataService.CreateOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(local)
	}

	c.io.Println("✓ Order saved locally")
	c.io.Printf("ID:    %s\n", local.Order.ID)
	c.io.Printf("Total: %.2f\n", local.Order.Total)
	if c.online() {
		c.io.Println("It is being sent to the server.")
	} else {
		c.io.Println("You are offline. The order will be sent when the connection is restored.")
	}
	return nil
}

func (c *Cli) runOrderList(ctx context.Context) error {
	orders := c.dataService.ListOrders(ctx)

	if c.jsonOutput {
		return c.printJSON(orders)
	}

	c.io.Println("=== Orders ===")
	c.io.Println()

	if len(orders) == 0 {
		c.io.Println("No orders found.")
		c.io.Println("Use 'adakings order create' to add one.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(c.io)
	tw.AppendHeader(table.Row{"ID", "Number", "Status", "Sync", "Total", "Customer"})
	for _, o := range orders {
		sync := o.SyncStatus
		if o.SyncError != "" {
			sync += " (" + o.SyncError + ")"
		}
		tw.AppendRow(table.Row{
			o.Order.ID, dash(o.Order.OrderNumber), o.Order.Status, sync,
			fmt.Sprintf("%.2f", o.Order.Total), dash(o.Order.CustomerName),
		})
	}
	tw.Render()
	return nil
}

func (c *Cli) runOrderUpdate(ctx context.Context, id string, opts UpdateOptions) error {
	update := data.OrderUpdate{Status: opts.Status, Notes: opts.Notes}
	if len(opts.Items) > 0 {
		items, err := parseItems(opts.Items)
		if err != nil {
			return err
		}
		update.Items = items
	}
	if update.Status == nil && update.Notes == nil && update.Items == nil {
		return fmt.Errorf("nothing to update: pass --status, --notes or --item")
	}

	local, err := c.dataService.UpdateOrder(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(local)
	}
	c.io.Printf("✓ Order %s updated (%s)\n", local.Order.ID, local.SyncStatus)
	return nil
}

func (c *Cli) runOrderDiscard(ctx context.Context, id string) error {
	if err := c.dataService.DiscardOrder(ctx, id); err != nil {
		return fmt.Errorf("failed to discard order: %w", err)
	}
	c.io.Printf("✓ Order %s discarded\n", id)
	return nil
}

func (c *Cli) runOrderRetry(ctx context.Context, id string) error {
	local, err := c.dataService.RetryOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to retry order: %w", err)
	}
	if c.jsonOutput {
		return c.printJSON(local)
	}
	c.io.Printf("✓ Order queued again as %s\n", local.Order.ID)
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
