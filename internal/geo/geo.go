package geo

import (
	"errors"
	"fmt"
	"math"
)

const (
	// EarthRadiusKm - средний радиус Земли
	EarthRadiusKm = 6371.0
	// DefaultSpeedKmh - скорость по умолчанию для расчета ETA
	DefaultSpeedKmh = 40.0
)

// ErrInvalidCoordinate возвращается для NaN/Inf и координат вне допустимого диапазона
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point - географическая точка в градусах
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate проверяет, что точка лежит в допустимых границах
func Validate(p Point) error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrInvalidCoordinate, p.Lat, p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// DistanceKm считает расстояние по формуле гаверсинуса, округляя до 2 знаков
func DistanceKm(a, b Point) (float64, error) {
	km, err := haversine(a, b)
	if err != nil {
		return 0, err
	}
	return math.Round(km*100) / 100, nil
}

// DistanceMeters - неокругленное расстояние в метрах, для проверки радиусов прибытия
func DistanceMeters(a, b Point) (float64, error) {
	km, err := haversine(a, b)
	if err != nil {
		return 0, err
	}
	return km * 1000, nil
}

func haversine(a, b Point) (float64, error) {
	if err := Validate(a); err != nil {
		return 0, err
	}
	if err := Validate(b); err != nil {
		return 0, err
	}

	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c, nil
}

// ETAMinutes возвращает ceil(distance/speed*60); неположительная скорость заменяется на DefaultSpeedKmh
func ETAMinutes(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	if distanceKm <= 0 {
		return 0
	}
	return int(math.Ceil(distanceKm / speedKmh * 60))
}

// FormatDistance форматирует расстояние: метры для < 1 км, иначе км с одним знаком
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}

// FormatETA форматирует время прибытия
func FormatETA(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
