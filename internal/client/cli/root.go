package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/app"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/iocli"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/config"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/logging"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// settleTimeout ограничивает ожидание отправки перед выходом
const settleTimeout = 10 * time.Second

// BuildInfo задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

type runner struct {
	v          *viper.Viper
	appOpts    []app.Option
	configFile string
	jsonOutput bool
}

// NewRootCommand собирает дерево команд клиента
func NewRootCommand(info BuildInfo, opts ...app.Option) *cobra.Command {
	r := &runner{v: config.New(), appOpts: opts}

	root := &cobra.Command{
		Use:           "adakings",
		Short:         "Adakings point-of-sale client with offline sync",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       info.Version,
	}
	root.SetVersionTemplate(fmt.Sprintf("Adakings Client\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n",
		info.Version, info.BuildDate, info.GitCommit))

	pf := root.PersistentFlags()
	pf.StringVar(&r.configFile, "config", "", "Path to config file")
	pf.String("server", "", "Server URL")
	pf.String("db", "", "Path to local database")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (text, json)")
	pf.BoolVar(&r.jsonOutput, "json", false, "Print results as JSON")

	for key, flag := range map[string]string{
		"server_url": "server",
		"db_path":    "db",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		_ = r.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		r.loginCommand(),
		r.command("logout", "Delete the local session", cobra.NoArgs, func(ctx context.Context, c *Cli, _ []string) error {
			return c.runLogout(ctx)
		}),
		r.command("status", "Show session and sync state", cobra.NoArgs, func(ctx context.Context, c *Cli, _ []string) error {
			return c.runStatus(ctx)
		}),
		r.orderCommand(),
		r.paymentCommand(),
		r.profileCommand(),
		r.syncCommand(),
		r.transactionsCommand(),
		r.command("route <path>", "Show what a screen displays while offline", cobra.ExactArgs(1), func(ctx context.Context, c *Cli, args []string) error {
			return c.runRoute(ctx, args[0])
		}),
		r.daemonCommand(),
	)

	return root
}

// command создает простую подкоманду без собственных флагов
func (r *runner) command(use, short string, args cobra.PositionalArgs, fn func(ctx context.Context, c *Cli, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return fn(ctx, c, args)
			})
		},
	}
}

// run поднимает приложение, выполняет команду и дожидается отправки очереди
func (r *runner) run(cmd *cobra.Command, fn func(ctx context.Context, c *Cli, a *app.App) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(r.v, r.configFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, logger, r.appOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	if err := a.Init(ctx); err != nil {
		return err
	}

	c := New(Deps{
		IO:           iocli.NewStream(cmd.InOrStdin(), cmd.OutOrStdout()),
		Auth:         a.Auth,
		Data:         a.Orders,
		Queue:        a.Queue,
		Transactions: a.Transactions,
		Routes:       a.Routes,
		Online:       a.Network.IsOnline,
		Now:          a.Clock.Now,
	})
	c.SetJSON(r.jsonOutput)

	if err := fn(ctx, c, a); err != nil {
		return err
	}
	a.Settle(ctx, settleTimeout)
	return nil
}

func (r *runner) loginCommand() *cobra.Command {
	var opts LoginOptions
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a staff member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Password == "" {
				opts.Password = os.Getenv("ADAKINGS_PASSWORD")
			}
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runLogin(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Password (prefer ADAKINGS_PASSWORD or the prompt)")
	return cmd
}

func (r *runner) orderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create and manage orders",
	}

	var create OrderOptions
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order (works offline)",
		Args:  cobra.NoArgs,
		Example: `  adakings order create --item "Jollof:2:45" --item "Kelewele:1:15"
  adakings order create --delivery Delivery --location "East Legon" --item 12:1:60`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runOrderCreate(ctx, create)
			})
		},
	}
	f := createCmd.Flags()
	f.StringVar(&create.CustomerName, "customer", "", "Customer name")
	f.StringVar(&create.CustomerPhone, "phone", "", "Customer phone")
	f.StringVar(&create.DeliveryType, "delivery", models.DeliveryPickup, "Delivery type (Pickup, Delivery)")
	f.StringVar(&create.DeliveryLocation, "location", "", "Delivery location")
	f.StringVar(&create.Notes, "notes", "", "Order notes")
	f.StringArrayVar(&create.Items, "item", nil, "Item as name:quantity:price, repeatable")
	_ = createCmd.MarkFlagRequired("item")

	var (
		status, notes string
		items         []string
	)
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a confirmed order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts UpdateOptions
			if cmd.Flags().Changed("status") {
				opts.Status = &status
			}
			if cmd.Flags().Changed("notes") {
				opts.Notes = &notes
			}
			opts.Items = items
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runOrderUpdate(ctx, args[0], opts)
			})
		},
	}
	updateCmd.Flags().StringVar(&status, "status", "", "New status")
	updateCmd.Flags().StringVar(&notes, "notes", "", "New notes")
	updateCmd.Flags().StringArrayVar(&items, "item", nil, "Replacement item as name:quantity:price, repeatable")

	cmd.AddCommand(
		createCmd,
		r.command("list", "List local orders with their sync state", cobra.NoArgs, func(ctx context.Context, c *Cli, _ []string) error {
			return c.runOrderList(ctx)
		}),
		updateCmd,
		r.command("discard <id>", "Drop an order that has not been synced", cobra.ExactArgs(1), func(ctx context.Context, c *Cli, args []string) error {
			return c.runOrderDiscard(ctx, args[0])
		}),
		r.command("retry <id>", "Queue a failed order again", cobra.ExactArgs(1), func(ctx context.Context, c *Cli, args []string) error {
			return c.runOrderRetry(ctx, args[0])
		}),
	)
	return cmd
}

func (r *runner) paymentCommand() *cobra.Command {
	var p models.Payment
	cmd := &cobra.Command{
		Use:   "payment <order-number>",
		Short: "Record a payment or refund (works offline)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.OrderNumber = args[0]
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runPayment(ctx, p)
			})
		},
	}
	cmd.Flags().Float64Var(&p.Amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&p.PaymentMethod, "method", "cash", "Payment method")
	cmd.Flags().StringVar(&p.PaymentType, "type", "payment", "Payment type (payment, refund)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (r *runner) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the staff profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runProfileShow(ctx)
			})
		},
	}

	var p models.Profile
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields (works offline)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runProfileUpdate(ctx, p)
			})
		},
	}
	updateCmd.Flags().StringVar(&p.FirstName, "first-name", "", "First name")
	updateCmd.Flags().StringVar(&p.LastName, "last-name", "", "Last name")
	updateCmd.Flags().StringVar(&p.Email, "email", "", "Email")
	updateCmd.Flags().StringVar(&p.Phone, "phone", "", "Phone number")

	cmd.AddCommand(updateCmd)
	return cmd
}

func (r *runner) syncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Inspect and drive the sync queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runSyncStatus(ctx)
			})
		},
	}
	cmd.AddCommand(
		r.command("status", "Show queued operations", cobra.NoArgs, func(ctx context.Context, c *Cli, _ []string) error {
			return c.runSyncStatus(ctx)
		}),
		r.command("force", "Send every queued operation now, ignoring backoff", cobra.NoArgs, func(ctx context.Context, c *Cli, _ []string) error {
			return c.runSyncForce(ctx)
		}),
		r.command("cancel <operation-id>", "Remove an operation from the queue", cobra.ExactArgs(1), func(ctx context.Context, c *Cli, args []string) error {
			return c.runSyncCancel(ctx, args[0])
		}),
	)
	return cmd
}

func (r *runner) transactionsCommand() *cobra.Command {
	var opts TransactionOptions
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List transactions, from the server or the offline snapshot",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, func(ctx context.Context, c *Cli, _ *app.App) error {
				return c.runTransactions(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Date, "date", "", "Only show transactions of this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "Bypass the in-memory cache")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Delete cached transaction data")
	return cmd
}

func (r *runner) daemonCommand() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Keep syncing in the foreground until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if metricsAddr != "" {
				r.v.Set("metrics_addr", metricsAddr)
			}
			return r.run(cmd, func(ctx context.Context, c *Cli, a *app.App) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				unsubscribe := a.Bus.Subscribe(func(e events.Event) {
					a.Logger.Info("Sync event", "type", e.Type)
				})
				defer unsubscribe()

				c.io.Println("Sync daemon running. Press Ctrl+C to stop.")
				return a.Run(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	return cmd
}
