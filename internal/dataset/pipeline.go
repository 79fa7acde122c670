/**
 * @description
 * The Dataset Normalizer & Enrichment Pipeline: a pure, single-pass,
 * stateless transform from one raw listings table to one cleaned,
 * feature-enriched table with a stable column contract.
 *
 * Stage order: column standardization -> price -> rating -> count -> date ->
 * categorical -> coordinate normalization -> feature engineering -> finalize.
 *
 * @notes
 * - Run never returns an error: malformed values degrade to policy defaults,
 *   missing columns gate their transforms off, and the worst case is an
 *   empty (but well-formed) table.
 * - The input table is defensively copied before any in-place transform, so
 *   callers may hold and reuse their raw tables.
 * - The output schema is computed alongside the data; consumers check the
 *   schema value instead of probing for column presence.
 */

package dataset

// Options parameterizes the pipeline for a deployment.
type Options struct {
	// FallbackLatitude/FallbackLongitude fill missing coordinates.
	// Defaults point at Dubai city center; this is a domain default, not a
	// universal constant.
	FallbackLatitude  float64
	FallbackLongitude float64
}

// DefaultOptions returns the Dubai-dashboard defaults.
func DefaultOptions() Options {
	return Options{
		FallbackLatitude:  25.2048,
		FallbackLongitude: 55.2708,
	}
}

// Schema records which canonical and derived columns resolved during a run.
type Schema struct {
	Columns []string `json:"columns"`

	HasPrice        bool `json:"has_price"`
	HasRating       bool `json:"has_rating"`
	HasReviews      bool `json:"has_reviews"`
	HasAvailability bool `json:"has_availability"`

	HasValueScore     bool `json:"has_value_score"`
	HasDemandScore    bool `json:"has_demand_score"`
	HasPriceCategory  bool `json:"has_price_category"`
	HasRatingCategory bool `json:"has_rating_category"`
	HasHostType       bool `json:"has_host_type"`
}

// Diagnostics exposes per-column degradation counts so failure rates stay
// observable even though the pipeline itself never raises.
type Diagnostics struct {
	// CoercionFailures counts cells per column that degraded to a policy
	// default (0, Missing, or a fallback coordinate).
	CoercionFailures map[string]int `json:"coercion_failures,omitempty"`

	RowsIn                 int     `json:"rows_in"`
	RowsOut                int     `json:"rows_out"`
	DuplicatesRemoved      int     `json:"duplicates_removed"`
	MissingCriticalDropped int     `json:"missing_critical_dropped"`
	OutliersRemoved        int     `json:"outliers_removed"`
	PriceCap               float64 `json:"price_cap,omitempty"`
}

func (d *Diagnostics) recordFailure(col string) {
	if d.CoercionFailures == nil {
		d.CoercionFailures = make(map[string]int)
	}
	d.CoercionFailures[col]++
}

// Result is the pipeline's output bundle.
type Result struct {
	Table       *Table      `json:"table"`
	Schema      Schema      `json:"schema"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Run executes the full pipeline. Pure function of its explicit inputs:
// safe to call redundantly, idempotent on its own output, side-effect-free
// on the input table.
func Run(raw *Table, opts Options) Result {
	var diag Diagnostics
	if raw == nil {
		empty := NewTable(nil)
		return Result{Table: empty, Schema: Schema{Columns: []string{}}}
	}

	t := raw.Clone()
	diag.RowsIn = t.NumRows()

	StandardizeColumns(t)
	normalizePrices(t, &diag)
	normalizeRatings(t, &diag)
	normalizeCounts(t, &diag)
	normalizeDates(t, &diag)
	normalizeCategoricals(t)
	normalizeCoordinates(t, opts, &diag)

	sch := Schema{
		HasPrice:        t.HasColumn("price_per_night"),
		HasRating:       t.HasColumn("overall_rating"),
		HasReviews:      t.HasColumn("reviews_count"),
		HasAvailability: t.HasColumn("availability"),
	}
	engineerFeatures(t, &sch)

	t = finalize(t, &diag)

	diag.RowsOut = t.NumRows()
	sch.Columns = t.Columns()

	return Result{Table: t, Schema: sch, Diagnostics: diag}
}
