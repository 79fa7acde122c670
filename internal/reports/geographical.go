/**
 * @description
 * Geographical report: per-location rollups and the coordinate bounding box
 * map clients use to frame the listings.
 */

package reports

import "github.com/staylens/backend/internal/dataset"

type CoordinateBounds struct {
	MinLatitude  float64 `json:"min_latitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

type GeographicalReport struct {
	TopLocations []GroupStat       `json:"top_locations,omitempty"`
	Bounds       *CoordinateBounds `json:"bounds,omitempty"`
}

const topLocationLimit = 15

func Geographical(t *dataset.Table) GeographicalReport {
	rep := GeographicalReport{}

	if locations := groupStats(t, "location"); len(locations) > 0 {
		if len(locations) > topLocationLimit {
			locations = locations[:topLocationLimit]
		}
		rep.TopLocations = locations
	}

	lats := numericColumn(t, "latitude")
	lons := numericColumn(t, "longitude")
	if len(lats) > 0 && len(lons) > 0 {
		rep.Bounds = &CoordinateBounds{
			MinLatitude:  minOf(lats),
			MaxLatitude:  maxOf(lats),
			MinLongitude: minOf(lons),
			MaxLongitude: maxOf(lons),
		}
	}
	return rep
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
