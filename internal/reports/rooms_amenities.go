/**
 * @description
 * Rooms & amenities report: room-type distribution with price stats and the
 * nightly-price premium each amenity flag commands over listings without it.
 */

package reports

import "github.com/staylens/backend/internal/dataset"

// amenityColumns are the binary flag columns produced by both the live
// fetcher and the sample generator. Absent columns are skipped.
var amenityColumns = []string{"wifi", "pool", "spa", "gym", "parking", "breakfast", "restaurant"}

type AmenityPremium struct {
	Amenity      string   `json:"amenity"`
	WithCount    int      `json:"with_count"`
	WithoutCount int      `json:"without_count"`
	AvgPriceWith *float64 `json:"avg_price_with,omitempty"`
	AvgPriceSans *float64 `json:"avg_price_without,omitempty"`
	Premium      *float64 `json:"premium,omitempty"`
}

type RoomsAmenitiesReport struct {
	RoomTypes []GroupStat      `json:"room_types,omitempty"`
	Amenities []AmenityPremium `json:"amenities,omitempty"`
}

func RoomsAmenities(t *dataset.Table) RoomsAmenitiesReport {
	rep := RoomsAmenitiesReport{RoomTypes: groupStats(t, "room_type")}

	for _, col := range amenityColumns {
		if !t.HasColumn(col) {
			continue
		}
		rep.Amenities = append(rep.Amenities, amenityPremium(t, col))
	}
	return rep
}

func amenityPremium(t *dataset.Table, col string) AmenityPremium {
	hasPrice := t.HasColumn("price_per_night")
	var withPrices, sansPrices []float64
	withCount, sansCount := 0, 0

	for r := 0; r < t.NumRows(); r++ {
		flag, ok := t.At(r, col).AsNumber()
		if !ok {
			continue
		}
		present := flag != 0
		if present {
			withCount++
		} else {
			sansCount++
		}
		if !hasPrice {
			continue
		}
		if price, okP := t.At(r, "price_per_night").AsNumber(); okP {
			if present {
				withPrices = append(withPrices, price)
			} else {
				sansPrices = append(sansPrices, price)
			}
		}
	}

	out := AmenityPremium{Amenity: col, WithCount: withCount, WithoutCount: sansCount}
	if len(withPrices) > 0 {
		avg := round2(mean(withPrices))
		out.AvgPriceWith = &avg
	}
	if len(sansPrices) > 0 {
		avg := round2(mean(sansPrices))
		out.AvgPriceSans = &avg
	}
	if out.AvgPriceWith != nil && out.AvgPriceSans != nil {
		premium := round2(*out.AvgPriceWith - *out.AvgPriceSans)
		out.Premium = &premium
	}
	return out
}
