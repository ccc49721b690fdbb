package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/cli/config"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

var priorityColors = map[types.AlertPriority]*color.Color{
	types.AlertPriorityCritical: color.New(color.FgRed, color.Bold),
	types.AlertPriorityHigh:     color.New(color.FgRed),
	types.AlertPriorityMedium:   color.New(color.FgYellow),
	types.AlertPriorityLow:      color.New(color.FgBlue),
}

func printAlert(a *alert.Alert) {
	c, ok := priorityColors[a.Priority]
	if !ok {
		c = color.New(color.FgWhite)
	}

	read := " "
	if !a.Read {
		read = "*"
	}
	fmt.Printf("%s %s  %s  %s\n", read, c.Sprintf("[%s]", a.Priority), a.Status.Label(), a.Title)
	fmt.Printf("    id=%s category=%s created=%s\n", a.ID, a.Category, a.CreatedAt.Format("2006-01-02 15:04:05"))
	if a.Resolution != "" {
		fmt.Printf("    resolution: %s\n", a.Resolution)
	}
}

func cmdAlert() *cli.Command {
	var apiCfg config.API

	newCmd := func() *cli.Command {
		var input alert.CreateInput
		var priority, category string
		return &cli.Command{
			Name:  "new",
			Usage: "Create an alert",
			Flags: joinFlags(apiCfg.Flags(), []cli.Flag{
				&cli.StringFlag{
					Name:        "title",
					Aliases:     []string{"t"},
					Required:    true,
					Destination: &input.Title,
				},
				&cli.StringFlag{
					Name:        "description",
					Aliases:     []string{"d"},
					Required:    true,
					Destination: &input.Description,
				},
				&cli.StringFlag{
					Name:        "priority",
					Aliases:     []string{"p"},
					Usage:       "Priority [critical|high|medium|low]",
					Destination: &priority,
				},
				&cli.StringFlag{
					Name:        "category",
					Aliases:     []string{"c"},
					Usage:       "Category (resources, equipment, supplies, staffing, systems, patient, incident)",
					Required:    true,
					Destination: &category,
				},
				&cli.StringFlag{
					Name:        "source",
					Destination: &input.Source,
				},
			}),
			Action: func(ctx context.Context, c *cli.Command) error {
				input.Priority = types.AlertPriority(priority)
				input.Category = types.AlertCategory(category)

				created, err := apiCfg.RESTClient().Create(ctx, input)
				if err != nil {
					return err
				}
				printAlert(created)
				return nil
			},
		}
	}

	listCmd := func() *cli.Command {
		var filter alert.Filter
		var status, priority, category string
		var asJSON bool
		return &cli.Command{
			Name:  "list",
			Usage: "List alerts",
			Flags: joinFlags(apiCfg.Flags(), []cli.Flag{
				&cli.StringFlag{
					Name:        "status",
					Usage:       "Filter by status [Active|Acknowledged|Resolved]",
					Destination: &status,
				},
				&cli.StringFlag{
					Name:        "priority",
					Usage:       "Filter by priority",
					Destination: &priority,
				},
				&cli.StringFlag{
					Name:        "category",
					Usage:       "Filter by category",
					Destination: &category,
				},
				&cli.StringFlag{
					Name:        "search",
					Usage:       "Search in title and description",
					Destination: &filter.Search,
				},
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "Output as JSON",
					Destination: &asJSON,
				},
			}),
			Action: func(ctx context.Context, c *cli.Command) error {
				filter.Status = types.AlertStatus(status)
				filter.Priority = types.AlertPriority(priority)
				filter.Category = types.AlertCategory(category)

				alerts, err := apiCfg.RESTClient().List(ctx, filter)
				if err != nil {
					return err
				}

				if asJSON {
					return json.NewEncoder(os.Stdout).Encode(alerts)
				}
				for _, a := range alerts {
					printAlert(a)
				}
				fmt.Printf("%d alert(s)\n", len(alerts))
				return nil
			},
		}
	}

	ackCmd := func() *cli.Command {
		return &cli.Command{
			Name:      "ack",
			Usage:     "Acknowledge an alert",
			ArgsUsage: "<alert-id>",
			Flags:     apiCfg.Flags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				id := types.AlertID(c.Args().First())
				if err := id.Validate(); err != nil {
					return err
				}

				a, err := apiCfg.RESTClient().Acknowledge(ctx, id)
				if err != nil {
					return err
				}
				printAlert(a)
				return nil
			},
		}
	}

	resolveCmd := func() *cli.Command {
		var resolution string
		return &cli.Command{
			Name:      "resolve",
			Usage:     "Resolve an alert",
			ArgsUsage: "<alert-id>",
			Flags: joinFlags(apiCfg.Flags(), []cli.Flag{
				&cli.StringFlag{
					Name:        "resolution",
					Aliases:     []string{"r"},
					Usage:       "Resolution note",
					Destination: &resolution,
				},
			}),
			Action: func(ctx context.Context, c *cli.Command) error {
				id := types.AlertID(c.Args().First())
				if err := id.Validate(); err != nil {
					return err
				}

				a, err := apiCfg.RESTClient().Resolve(ctx, id, resolution)
				if err != nil {
					return err
				}
				printAlert(a)
				return nil
			},
		}
	}

	statsCmd := func() *cli.Command {
		return &cli.Command{
			Name:  "stats",
			Usage: "Show alert statistics",
			Flags: apiCfg.Flags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				stats, err := apiCfg.RESTClient().Stats(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("total: %d  unread: %d\n", stats.Total, stats.Unread)
				for status, n := range stats.ByStatus {
					fmt.Printf("  %s: %d\n", status.Label(), n)
				}
				for priority, n := range stats.ByPriority {
					fmt.Printf("  %s: %d\n", priority, n)
				}
				return nil
			},
		}
	}

	return &cli.Command{
		Name:  "alert",
		Usage: "Manage alerts on a running server",
		Commands: []*cli.Command{
			newCmd(),
			listCmd(),
			ackCmd(),
			resolveCmd(),
			statsCmd(),
		},
	}
}
