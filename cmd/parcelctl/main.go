package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"parcel-network-service/internal/adapters/graphviz"
	"parcel-network-service/internal/api/dto"
	"parcel-network-service/internal/app"
	"parcel-network-service/internal/config"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/platform/obs"
	"parcel-network-service/internal/shell"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli"
)

func main() {
	config.LoadDotEnv()

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var cityFlags = []cli.Flag{
	cli.StringFlag{Name: "from", Usage: "origin city"},
	cli.StringFlag{Name: "to", Usage: "destination city"},
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	a := cli.NewApp()
	a.Name = "parcelctl"
	a.Usage = "query the city network and manage registered packages"
	a.Writer = out
	a.Flags = []cli.Flag{
		cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
	}

	a.Commands = []cli.Command{
		{
			Name:  "cities",
			Usage: "list every city in the network",
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				return printResult(c, dto.ListCitiesResponse{Cities: dto.CityNames(p.Planner.Cities())}, func(w io.Writer) {
					for _, city := range p.Planner.Cities() {
						fmt.Fprintln(w, city)
					}
				})
			}),
		},
		{
			Name:  "route",
			Usage: "shortest route between two cities",
			Flags: cityFlags,
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				route, err := p.Planner.Route(ctx, flagCity(c, "from"), flagCity(c, "to"))
				if err != nil {
					return err
				}
				return printResult(c, dto.NewRouteResponse(route), func(w io.Writer) {
					fmt.Fprintf(w, "%s (%g km)\n", joinCities(route.Cities), route.DistanceKm)
				})
			}),
		},
		{
			Name:  "travel-time",
			Usage: "transit time over a direct connection",
			Flags: append([]cli.Flag{cli.Float64Flag{Name: "speed", Usage: "average speed in km/h (0 uses the default)"}}, cityFlags...),
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				est, err := p.Planner.TravelTime(ctx, flagCity(c, "from"), flagCity(c, "to"), c.Float64("speed"))
				if err != nil {
					return err
				}
				return printResult(c, dto.NewTravelTimeResponse(est), func(w io.Writer) {
					fmt.Fprintf(w, "%g km at %g km/h: %.2f hours\n", est.DistanceKm, est.SpeedKmh, est.Hours)
				})
			}),
		},
		{
			Name:  "create",
			Usage: "register a package routed from one city to another",
			Flags: cityFlags,
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				pkg, err := p.Registry.Create(ctx, flagCity(c, "from"), flagCity(c, "to"))
				if err != nil {
					return err
				}
				return printResult(c, dto.NewPackageResponse(pkg), func(w io.Writer) { fmt.Fprintln(w, pkg.Code) })
			}),
		},
		{
			Name:      "track",
			Usage:     "show one package",
			ArgsUsage: "CODE",
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				pkg, err := p.Registry.Find(argCode(c))
				if err != nil {
					return err
				}
				return printResult(c, dto.NewPackageResponse(pkg), func(w io.Writer) { writePackage(w, pkg) })
			}),
		},
		{
			Name:  "list",
			Usage: "list registered packages in creation order",
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				pkgs := p.Registry.List()
				return printResult(c, dto.NewListPackagesResponse(pkgs), func(w io.Writer) {
					for _, pkg := range pkgs {
						writePackage(w, pkg)
					}
				})
			}),
		},
		{
			Name:      "remove",
			Usage:     "delete a package",
			ArgsUsage: "CODE",
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				code := argCode(c)
				if err := p.Registry.Remove(ctx, code); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "removed %s\n", code)
				return nil
			}),
		},
		{
			Name:  "graph",
			Usage: "print the network in Graphviz DOT format",
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				b, err := graphviz.MarshalDOT(p.Planner.Graph(), "iberia")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(c.App.Writer, "%s\n", b)
				return err
			}),
		},
		{
			Name:  "shell",
			Usage: "interactive numbered menu",
			Action: withApp(func(ctx context.Context, c *cli.Context, p *app.App) error {
				sh := &shell.Shell{
					In:       shell.NewLineInput(in, c.App.Writer),
					Out:      c.App.Writer,
					Planner:  p.Planner,
					Registry: p.Registry,
				}
				return sh.Run(ctx)
			}),
		},
	}
	return a
}

// withApp loads configuration and opens the configured backends around one command.
func withApp(fn func(ctx context.Context, c *cli.Context, p *app.App) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "warn"), cfg.LogFormat)
		ctx := logger.WithContext(context.Background())

		p, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer p.Close()

		return fn(ctx, c, p)
	}
}

func printResult(c *cli.Context, v any, text func(io.Writer)) error {
	if c.GlobalBool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(c.App.Writer)
	return nil
}

func flagCity(c *cli.Context, name string) domain.City {
	return domain.NormalizeCity(c.String(name))
}

func argCode(c *cli.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Args().First()))
}

func writePackage(w io.Writer, p domain.Package) {
	fmt.Fprintf(w, "%s  %s -> %s  [%s]  %g km  %s\n",
		p.Code, p.Origin, p.Destination, joinCities(p.Route), p.DistanceTotal, p.Status)
}

func joinCities(cities []domain.City) string {
	parts := make([]string, len(cities))
	for i, c := range cities {
		parts[i] = string(c)
	}
	return strings.Join(parts, " -> ")
}
