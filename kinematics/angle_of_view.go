package kinematics

import (
	"math"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/pkg/errors"
)

// AngleOfView estimates the horizontal camera angle of view in degrees from the apparent length
// of the aircraft on each screenshot, assuming the observer position.
// Max uses the Min ground speed fit, the Min pitches and a shorter apparent length so that every term
// increases the angle; Min is the reverse.
func (a *Analysis) AngleOfView(dir ErrorDirection, observer geom.Point) (Table, error) {
	if !dir.Valid() {
		return nil, errors.Wrapf(ErrBadDirection, "%d", int(dir))
	}
	gsFit, err := a.groundSpeed.Get(Flip(dir))
	if err != nil {
		return nil, err
	}
	pitches := a.Pitches(Flip(dir))
	ret := make(Table, 0, len(a.ds.ApparentLengths))
	for _, al := range a.ds.ApparentLengths {
		t := al.Time.Seconds()
		px := al.Pixels - dir.Sign()*a.params.ApparentLengthPixelError
		x := observer.X - gsFit.IntegralFromZero(t)
		d := math.Hypot(x, observer.Y)
		alpha := math.Abs(math.Atan2(observer.Y, x))
		pitch, err := pitches.Interpolate(t)
		if err != nil {
			return nil, errors.Wrapf(err, "t=%v", t)
		}
		apparentLength := a.ds.Aircraft.Length * math.Sin(alpha) * math.Cos(geom.Radians(pitch))
		widthInMetres := a.ds.ScreenshotWidth / (px / apparentLength)
		ret = append(ret, []float64{t, geom.Degrees(2 * math.Atan(widthInMetres/(2*d)))})
	}
	return ret, nil
}
