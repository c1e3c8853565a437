package kinematics

import (
	"math"

	"github.com/LdDl/trajectory-go/geom"
)

// YawRow is the estimated deviation of the aircraft from the runway heading in degrees,
// positive to the right, with its lower and upper bounds
type YawRow struct {
	Time float64
	Yaw  float64
	Low  float64
	High float64
}

// Yaw compares the bearing from the observer to the aircraft with the measured wing tip aspect.
// The observer error widens the bound by the angle it subtends at the aircraft.
func (a *Analysis) Yaw(observer ObserverEstimate) ([]YawRow, error) {
	rows, err := a.ObserverTimeDistanceBearing(Mid)
	if err != nil {
		return nil, err
	}
	offsetFit, err := a.offsetGroundSpeed.Get(Mid)
	if err != nil {
		return nil, err
	}
	xOffset := a.RunwayOffset(offsetFit)
	observerError := observer.Error()
	yMean := observer.Y.Mean
	ret := make([]YawRow, 0, len(rows))
	for _, row := range rows {
		xObs := observer.X.Mean - row.Distance - xOffset
		obsBearing := geom.NormalizeDegrees(geom.Degrees(math.Atan2(yMean, xObs)))
		yaw := geom.NormalizeDegrees(obsBearing - row.Bearing)
		if yaw > 180.0 {
			yaw -= 360.0
		}
		errDeg := 2.0*geom.Degrees(math.Atan(observerError/math.Hypot(yMean, xObs))) + row.BearingError
		ret = append(ret, YawRow{Time: row.Time, Yaw: yaw, Low: yaw - errDeg, High: yaw + errDeg})
	}
	return ret, nil
}

// YawTable converts yaw rows to a table of (t, yaw, low, high)
func YawTable(rows []YawRow) Table {
	ret := make(Table, len(rows))
	for i, r := range rows {
		ret[i] = []float64{r.Time, r.Yaw, r.Low, r.High}
	}
	return ret
}
