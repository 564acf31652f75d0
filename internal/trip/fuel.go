package trip

import (
	"fmt"
	"math"

	"github.com/haulroute/haulroute/internal/geo"
)

// fuelRangeMiles is the distance a truck covers between refueling stops.
const fuelRangeMiles = 1000.0

// FuelStopCount returns the number of refueling stops a route of the given
// length requires. The final segment ends at the destination, so a route
// needs one fewer stop than it has full fuel-range segments. A route of
// exactly one fuel range needs no stop.
func FuelStopCount(totalDistanceMiles float64) int {
	if totalDistanceMiles <= fuelRangeMiles {
		return 0
	}
	return int(math.Ceil(totalDistanceMiles/fuelRangeMiles)) - 1
}

// PlanFuelStops places refueling stops along the straight line between the
// pickup and dropoff coordinates. Interpolating between the endpoints rather
// than along the route geometry is an accepted approximation: stop positions
// are illustrative, not precise road positions.
func PlanFuelStops(totalDistanceMiles float64, from, to geo.Coordinate) []FuelStop {
	count := FuelStopCount(totalDistanceMiles)
	if count == 0 {
		return nil
	}

	stops := make([]FuelStop, 0, count)
	for i := 1; i <= count; i++ {
		fraction := float64(i) / float64(count+1)
		stops = append(stops, FuelStop{
			Lat:                    round(from.Lat+fraction*(to.Lat-from.Lat), 6),
			Lon:                    round(from.Lon+fraction*(to.Lon-from.Lon), 6),
			Name:                   fmt.Sprintf("Fuel Stop %d", i),
			DistanceFromStartMiles: round(float64(i)*fuelRangeMiles, 1),
		})
	}
	return stops
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
