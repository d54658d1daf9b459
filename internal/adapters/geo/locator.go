package geo

import (
	"context"
	"math"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

const earthRadiusKm = 6371.0

type Region struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// KoreanRegions holds one reference point per metropolitan city and
// province, named the way votes tag their region.
var KoreanRegions = []Region{
	{"Seoul", 37.5665, 126.9780},
	{"Busan", 35.1796, 129.0756},
	{"Incheon", 37.4563, 126.7052},
	{"Daegu", 35.8714, 128.6014},
	{"Daejeon", 36.3504, 127.3845},
	{"Gwangju", 35.1595, 126.8526},
	{"Ulsan", 35.5384, 129.3114},
	{"Sejong", 36.4800, 127.2890},
	{"Gyeonggi", 37.2750, 127.0095},
	{"Gangwon", 37.8228, 128.1555},
	{"Chungbuk", 36.6357, 127.4917},
	{"Chungnam", 36.6588, 126.6728},
	{"Jeonbuk", 35.8242, 127.1480},
	{"Jeonnam", 34.8161, 126.4629},
	{"Gyeongbuk", 36.5760, 128.5056},
	{"Gyeongnam", 35.2383, 128.6925},
	{"Jeju", 33.4996, 126.5312},
}

// NearestLocator resolves a coordinate to the closest reference point, as
// long as it lies within maxDistanceKm of it.
type NearestLocator struct {
	regions       []Region
	maxDistanceKm float64
}

func NewNearestLocator(regions []Region, maxDistanceKm float64) ports.RegionLocator {
	return &NearestLocator{regions: regions, maxDistanceKm: maxDistanceKm}
}

func (l *NearestLocator) Locate(_ context.Context, latitude, longitude float64) (string, error) {
	if math.IsNaN(latitude) || math.IsNaN(longitude) ||
		latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return "", domain.ErrInvalidLocation
	}

	best, bestKm := "", math.Inf(1)
	for _, r := range l.regions {
		if d := distanceKm(latitude, longitude, r.Latitude, r.Longitude); d < bestKm {
			best, bestKm = r.Name, d
		}
	}
	if best == "" || bestKm > l.maxDistanceKm {
		return "", domain.ErrRegionUnknown
	}
	return best, nil
}

// distanceKm is the haversine great-circle distance.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
