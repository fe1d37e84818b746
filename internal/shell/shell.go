package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"parcel-network-service/internal/adapters/graphviz"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/services"
	"strings"
)

const menu = `
--- Menu ---
1. Direct travel time between two cities
2. Shortest route between two cities
3. Show network (DOT)
4. Register a package
5. Track a package
6. List all packages
7. Remove a package
8. Exit
`

// Shell is the numbered-menu front end. It only formats results and reports
// errors; every error is printed and the loop continues.
type Shell struct {
	In       InputSource
	Out      io.Writer
	Planner  *services.RoutePlanner
	Registry *services.PackageRegistry
}

// Run loops until the user picks Exit or input is exhausted.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.Out, menu)
		choice, ok := s.In.ReadLine("Choose an option: ")
		if !ok {
			fmt.Fprintln(s.Out, "\nNo more input. Bye!")
			return nil
		}

		switch choice {
		case "1":
			s.travelTime(ctx)
		case "2":
			s.route(ctx)
		case "3":
			s.graph()
		case "4":
			s.register(ctx)
		case "5":
			s.track()
		case "6":
			s.list()
		case "7":
			s.remove(ctx)
		case "8":
			fmt.Fprintln(s.Out, "Exiting. Bye!")
			return nil
		default:
			fmt.Fprintln(s.Out, "Invalid option, please try again.")
		}
	}
}

func (s *Shell) cities() (domain.City, domain.City) {
	o, d, usedDefaults := ReadCities(s.In)
	if usedDefaults {
		fmt.Fprintf(s.Out, "\nInput unavailable, using defaults %s -> %s.\n", o, d)
	}
	return o, d
}

func (s *Shell) travelTime(ctx context.Context) {
	o, d := s.cities()
	est, err := s.Planner.TravelTime(ctx, o, d, 0)
	if err != nil {
		s.report(err, fmt.Sprintf("No direct connection data between %s and %s.", o, d))
		return
	}
	fmt.Fprintf(s.Out, "\nDistance between %s and %s is %s km.\n", o, d, formatKm(est.DistanceKm))
	fmt.Fprintf(s.Out, "Estimated delivery time is %.2f hours (at %s km/h).\n", est.Hours, formatKm(est.SpeedKmh))
}

func (s *Shell) route(ctx context.Context) {
	o, d := s.cities()
	route, err := s.Planner.Route(ctx, o, d)
	if err != nil {
		s.report(err, fmt.Sprintf("No route exists between %s and %s.", o, d))
		return
	}
	fmt.Fprintf(s.Out, "Shortest route between %s and %s: %s\n", o, d, joinRoute(route.Cities))
	fmt.Fprintf(s.Out, "Total distance: %s km\n", formatKm(route.DistanceKm))
}

func (s *Shell) graph() {
	b, err := graphviz.MarshalDOT(s.Planner.Graph(), "network")
	if err != nil {
		fmt.Fprintf(s.Out, "Could not render network: %v\n", err)
		return
	}
	s.Out.Write(b)
	fmt.Fprintln(s.Out)
}

func (s *Shell) register(ctx context.Context) {
	o, d := s.cities()
	pkg, err := s.Registry.Create(ctx, o, d)
	if err != nil {
		s.report(err, "Package could not be registered because no route exists.")
		return
	}
	fmt.Fprintf(s.Out, "\nPackage registered with code: %s\n", pkg.Code)
}

func (s *Shell) track() {
	code, ok := s.In.ReadLine("Package code: ")
	if !ok {
		return
	}
	pkg, err := s.Registry.Find(strings.ToUpper(code))
	if err != nil {
		s.report(err, fmt.Sprintf("No package found with code %s.", code))
		return
	}
	fmt.Fprintf(s.Out, "\nStatus of package %s:\n", pkg.Code)
	writePackage(s.Out, pkg, "")
}

func (s *Shell) list() {
	pkgs := s.Registry.List()
	if len(pkgs) == 0 {
		fmt.Fprintln(s.Out, "\nNo packages registered.")
		return
	}
	fmt.Fprintln(s.Out, "\n--- Packages ---")
	for _, p := range pkgs {
		fmt.Fprintf(s.Out, "Code: %s\n", p.Code)
		writePackage(s.Out, p, "  ")
		fmt.Fprintln(s.Out)
	}
}

func (s *Shell) remove(ctx context.Context) {
	code, ok := s.In.ReadLine("Code of the package to remove: ")
	if !ok {
		return
	}
	code = strings.ToUpper(code)
	if err := s.Registry.Remove(ctx, code); err != nil {
		s.report(err, fmt.Sprintf("No package found with code %s.", code))
		return
	}
	fmt.Fprintf(s.Out, "\nPackage %s removed.\n", code)
}

// report prints the friendly message for lookup failures and the raw error otherwise.
func (s *Shell) report(err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoPath):
		fmt.Fprintln(s.Out, notFoundMsg)
	default:
		fmt.Fprintf(s.Out, "Error: %v\n", err)
	}
}

func writePackage(w io.Writer, p domain.Package, indent string) {
	fmt.Fprintf(w, "%sOrigin: %s\n", indent, p.Origin)
	fmt.Fprintf(w, "%sDestination: %s\n", indent, p.Destination)
	fmt.Fprintf(w, "%sRoute: %s\n", indent, joinRoute(p.Route))
	fmt.Fprintf(w, "%sStatus: %s\n", indent, p.Status)
}

func joinRoute(cities []domain.City) string {
	parts := make([]string, 0, len(cities))
	for _, c := range cities {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, " -> ")
}

func formatKm(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
