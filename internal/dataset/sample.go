/**
 * @description
 * Deterministic synthetic sample dataset: the fallback source when neither a
 * snapshot nor a bundled file is available. Fixed seed, fixed size, declared
 * distributions — two calls in the same process produce identical tables, a
 * contract downstream tests rely on.
 *
 * @dependencies
 * - standard "math", "math/rand"
 *
 * @notes
 * - Columns are generated one at a time from a single seeded source, so the
 *   draw order below is part of the determinism contract.
 */

package dataset

import (
	"math"
	"math/rand"
	"strconv"
)

const (
	sampleSeed = 42
	sampleRows = 500

	amenityPresentProbability = 0.7
)

var (
	sampleHotelTypes = []string{"Hotel", "Resort", "Apartment", "Villa", "Hostel"}
	sampleRoomTypes  = []string{"Private Room", "Entire Place", "Shared Room"}
	sampleLocations  = []string{
		"Downtown Dubai", "Dubai Marina", "Jumeirah", "Deira",
		"Business Bay", "Palm Jumeirah", "JBR", "Al Barsha",
	}
	sampleAmenities = []string{"wifi", "pool", "parking", "gym", "spa", "breakfast", "restaurant"}
)

// SampleTable deterministically generates the 500-row demo dataset.
func SampleTable() *Table {
	rng := rand.New(rand.NewSource(sampleSeed))

	columns := []string{
		"hotel_name", "price_per_night", "overall_rating", "reviews_count",
		"hotel_type", "room_type", "location", "availability",
		"latitude", "longitude", "total_amenities_count",
		"host_listings_count", "minimum_nights",
	}
	columns = append(columns, sampleAmenities...)

	t := NewTable(columns)
	for i := 0; i < sampleRows; i++ {
		t.AppendRow(make([]Value, len(columns)))
	}

	fillColumn(t, "hotel_name", func(row int) Value {
		return String("Hotel " + strconv.Itoa(row))
	})
	fillColumn(t, "price_per_night", func(int) Value {
		return Number(gammaDraw(rng, 2, 200))
	})
	fillColumn(t, "overall_rating", func(int) Value {
		return Number(3.0 + rng.Float64()*2.0)
	})
	fillColumn(t, "reviews_count", func(int) Value {
		return Number(float64(poissonDraw(rng, 50)))
	})
	fillColumn(t, "hotel_type", func(int) Value {
		return String(sampleHotelTypes[rng.Intn(len(sampleHotelTypes))])
	})
	fillColumn(t, "room_type", func(int) Value {
		return String(sampleRoomTypes[rng.Intn(len(sampleRoomTypes))])
	})
	fillColumn(t, "location", func(int) Value {
		return String(sampleLocations[rng.Intn(len(sampleLocations))])
	})
	fillColumn(t, "availability", func(int) Value {
		return Number(float64(rng.Intn(365)))
	})
	fillColumn(t, "latitude", func(int) Value {
		return Number(25.0 + rng.Float64()*0.3)
	})
	fillColumn(t, "longitude", func(int) Value {
		return Number(55.1 + rng.Float64()*0.3)
	})
	fillColumn(t, "total_amenities_count", func(int) Value {
		return Number(float64(5 + rng.Intn(25)))
	})
	fillColumn(t, "host_listings_count", func(int) Value {
		return Number(float64(1 + rng.Intn(49)))
	})
	fillColumn(t, "minimum_nights", func(int) Value {
		return Number(float64(1 + rng.Intn(6)))
	})
	for _, amenity := range sampleAmenities {
		fillColumn(t, amenity, func(int) Value {
			if rng.Float64() < amenityPresentProbability {
				return Number(1)
			}
			return Number(0)
		})
	}

	return t
}

// fillColumn populates an existing column row by row, preserving draw order.
func fillColumn(t *Table, name string, fn func(row int) Value) {
	for r := 0; r < t.NumRows(); r++ {
		t.Set(r, name, fn(r))
	}
}

// gammaDraw samples a gamma(shape, scale) variate via Marsaglia-Tsang.
// Valid for shape >= 1, which covers the price distribution used here.
func gammaDraw(rng *rand.Rand, shape, scale float64) float64 {
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// poissonDraw samples a Poisson(lambda) variate via Knuth's product method.
func poissonDraw(rng *rand.Rand, lambda float64) int {
	threshold := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= threshold {
			return k
		}
		k++
	}
}
