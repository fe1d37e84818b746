package dto

type CreatePackageRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type PackageResponse struct {
	Code          string   `json:"code"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	Route         []string `json:"route"`
	DistanceTotal float64  `json:"distance_total"`
	Status        string   `json:"status"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}
