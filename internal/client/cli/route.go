package cli

import (
	"context"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/routing"
)

func (c *Cli) runRoute(ctx context.Context, path string) error {
	res := c.routes.Resolve(ctx, path)

	if c.jsonOutput {
		return c.printJSON(res)
	}

	c.io.Printf("%s: %s\n", res.Path, res.Mode)
	if res.Mode == routing.ModeLive {
		return nil
	}

	if res.Title != "" {
		c.io.Println(res.Title)
	}
	if res.Message != "" {
		c.io.Println(res.Message)
	}
	if res.Mode == routing.ModeCached {
		c.io.Printf("Cached data from %s (%s old)\n",
			res.LastUpdated.Format(time.DateTime), c.now().Sub(res.LastUpdated).Round(time.Second))
	}
	for _, a := range res.Actions {
		c.io.Printf("  - %s\n", a)
	}
	return nil
}
