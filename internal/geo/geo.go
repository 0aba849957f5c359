package geo

import "math"

// earthRadiusKm 地球半径（公里）
const earthRadiusKm = 6371.0

// Point 经纬度坐标
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm 计算两点间大圆距离（Haversine 公式），结果保留 2 位小数
func DistanceKm(from, to Point) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	dLat := toRadians(to.Latitude - from.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return round2(earthRadiusKm * c)
}

// EstimatedMinutes 根据距离估算送达分钟数：固定 5 分钟准备时间加每公里 2 分钟
func EstimatedMinutes(distanceKm float64) int {
	if distanceKm < 0 {
		distanceKm = 0
	}
	return int(math.Floor(5 + 2*distanceKm))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
