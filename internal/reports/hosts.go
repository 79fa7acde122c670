/**
 * @description
 * Hosts report: host-type distribution, the hosts with the largest
 * portfolios, and per-host-type performance averages.
 */

package reports

import "github.com/staylens/backend/internal/dataset"

type TopHost struct {
	HostName string   `json:"host_name"`
	Listings int      `json:"listings"`
	AvgPrice *float64 `json:"avg_price,omitempty"`
}

type HostsReport struct {
	HostTypes []GroupStat `json:"host_types,omitempty"`
	TopHosts  []TopHost   `json:"top_hosts,omitempty"`
}

const topHostLimit = 10

func Hosts(t *dataset.Table) HostsReport {
	rep := HostsReport{HostTypes: groupStats(t, "host_type")}

	counts := valueCounts(t, "host_name")
	if len(counts) == 0 {
		return rep
	}
	prices := groupNumeric(t, "host_name", "price_per_night")

	if len(counts) > topHostLimit {
		counts = counts[:topHostLimit]
	}
	for _, entry := range counts {
		host := TopHost{HostName: entry.Label, Listings: entry.Count}
		if vals := prices[entry.Label]; len(vals) > 0 {
			avg := round2(mean(vals))
			host.AvgPrice = &avg
		}
		rep.TopHosts = append(rep.TopHosts, host)
	}
	return rep
}
