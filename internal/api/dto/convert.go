package dto

import "parcel-network-service/internal/domain"

// CityNames converts cities to their wire form.
func CityNames(cities []domain.City) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = string(c)
	}
	return out
}

func NewPackageResponse(p domain.Package) PackageResponse {
	return PackageResponse{
		Code:          p.Code,
		Origin:        string(p.Origin),
		Destination:   string(p.Destination),
		Route:         CityNames(p.Route),
		DistanceTotal: p.DistanceTotal,
		Status:        string(p.Status),
	}
}

func NewListPackagesResponse(pkgs []domain.Package) ListPackagesResponse {
	res := ListPackagesResponse{Packages: make([]PackageResponse, 0, len(pkgs))}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, NewPackageResponse(p))
	}
	return res
}

func NewRouteResponse(route domain.Route) RouteResponse {
	return RouteResponse{
		Origin:      string(route.Origin()),
		Destination: string(route.Destination()),
		Route:       CityNames(route.Cities),
		DistanceKm:  route.DistanceKm,
	}
}

func NewTravelTimeResponse(est domain.TravelEstimate) TravelTimeResponse {
	return TravelTimeResponse{
		Origin:      string(est.Origin),
		Destination: string(est.Destination),
		DistanceKm:  est.DistanceKm,
		SpeedKmh:    est.SpeedKmh,
		Hours:       est.Hours,
	}
}
