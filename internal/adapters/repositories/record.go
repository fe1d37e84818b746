package repositories

import "parcel-network-service/internal/domain"

// packageRecord is the persisted shape of a package, shared by every backend.
type packageRecord struct {
	Code          string   `json:"code"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	Route         []string `json:"route"`
	DistanceTotal float64  `json:"distance_total"`
	Status        string   `json:"status"`
}

func toRecord(p domain.Package) packageRecord {
	route := make([]string, 0, len(p.Route))
	for _, c := range p.Route {
		route = append(route, string(c))
	}
	return packageRecord{
		Code:          p.Code,
		Origin:        string(p.Origin),
		Destination:   string(p.Destination),
		Route:         route,
		DistanceTotal: p.DistanceTotal,
		Status:        string(p.Status),
	}
}

func (r packageRecord) toDomain() domain.Package {
	route := make([]domain.City, 0, len(r.Route))
	for _, c := range r.Route {
		route = append(route, domain.City(c))
	}
	return domain.Package{
		Code:          r.Code,
		Origin:        domain.City(r.Origin),
		Destination:   domain.City(r.Destination),
		Route:         route,
		DistanceTotal: r.DistanceTotal,
		Status:        domain.PackageStatus(r.Status),
	}
}

func toRecords(pkgs []domain.Package) []packageRecord {
	out := make([]packageRecord, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, toRecord(p))
	}
	return out
}

func fromRecords(recs []packageRecord) []domain.Package {
	out := make([]domain.Package, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toDomain())
	}
	return out
}
