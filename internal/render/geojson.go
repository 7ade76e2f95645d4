package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"homeenergy/server/internal/aggregate"
)

// HomesMap places every geocoded home as a point feature carrying its
// consumption totals. Homes without coordinates are left out.
func HomesMap(homes []aggregate.HomeSummary) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, h := range homes {
		if h.Latitude == nil || h.Longitude == nil {
			continue
		}

		feature := geojson.NewFeature(orb.Point{*h.Longitude, *h.Latitude})
		feature.ID = h.HomeID
		feature.Properties = geojson.Properties{
			"home_id":      h.HomeID,
			"address":      h.Address,
			"home_type":    h.HomeType,
			"total_kwh":    h.TotalKwh,
			"total_bill":   h.TotalBill,
			"record_count": h.RecordCount,
		}
		fc.Append(feature)
	}
	return fc
}
