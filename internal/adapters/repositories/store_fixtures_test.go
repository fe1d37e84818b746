package repositories

import "parcel-network-service/internal/domain"

func samplePackages() []domain.Package {
	return []domain.Package{
		{
			Code:          "PKG-00001",
			Origin:        "Madrid",
			Destination:   "Barcelona",
			Route:         []domain.City{"Madrid", "Barcelona"},
			DistanceTotal: 621,
			Status:        domain.StatusInTransit,
		},
		{
			Code:          "PKG-00002",
			Origin:        "Porto",
			Destination:   "Sevilla",
			Route:         []domain.City{"Porto", "Lisboa", "Sevilla"},
			DistanceTotal: 773,
			Status:        domain.StatusInTransit,
		},
	}
}
