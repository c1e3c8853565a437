package dataset

import (
	"image"
	"math"
	"sort"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/pkg/errors"
)

// Nizhneangarsk (UIUN) runway 22 from seven overlapping Google Maps satellite tiles of 2560x1440 pixels.
// Tile 5 holds the runway 22 threshold and is the reference frame.
const (
	nizhneangarskReferenceTile = 5
	// NizhneangarskScale in metres per pixel: 50 m on the map scale bar is 81 pixels
	NizhneangarskScale = 50.0 / (2536.0 - 2455.0)
	// nizhneangarskPickError is the pixel uncertainty of a point picked on a tile
	nizhneangarskPickError = 1.0
	// nizhneangarskApproach is how far before the threshold the extended centreline is drawn, metres
	nizhneangarskApproach = 2500.0
)

// The same feature seen on tile i and on tile i+1
var nizhneangarskTiePoints = map[geom.TilePair][2]geom.PixelPoint{
	// Brown pixel on the SE edge of a red roofed house
	{From: 1, To: 2}: {geom.NewPixelPoint(141, 1217), geom.NewPixelPoint(952, 179)},
	// SE point of the jetty
	{From: 2, To: 3}: {geom.NewPixelPoint(532, 1171), geom.NewPixelPoint(1220, 239)},
	// Centre of a white mark
	{From: 3, To: 4}: {geom.NewPixelPoint(1189, 1212), geom.NewPixelPoint(1854, 312)},
	// NW tip of the threshold
	{From: 4, To: 5}: {geom.NewPixelPoint(856, 1034), geom.NewPixelPoint(1577, 182)},
	// South tip of the pin identifying the airport
	{From: 5, To: 6}: {geom.NewPixelPoint(1137, 1254), geom.NewPixelPoint(1952, 245)},
	// South tip of the pin identifying the supermarket
	{From: 6, To: 7}: {geom.NewPixelPoint(1120, 1118), geom.NewPixelPoint(1663, 375)},
}

var (
	// Runway centreline at the threshold, tile 5
	nizhneangarskThreshold = geom.NewPixelPoint(1597, 197)
	// The runway end is picked as the box between its two corners on tiles 6 and 7
	nizhneangarskEndTile6 = geom.NewRectFrom(image.Rect(736, 1276, 774, 1306))
	nizhneangarskEndTile7 = geom.NewRectFrom(image.Rect(1279, 532, 1319, 564))
	// A clear line across the runway on tile 7
	nizhneangarskRunwayWidth = geom.NewRectFrom(image.Rect(1431, 338, 1473, 371))
	// Boundary fence breached after leaving the runway, tile 7
	nizhneangarskBoundaryFence = geom.NewPixelPoint(988, 713)
)

type tilePosition struct {
	frame int
	tile  int
	pt    geom.PixelPoint
	note  string
}

// Approach positions recognised on the tiles, keyed by video frame
var nizhneangarskPositions = []tilePosition{
	{1, 1, geom.NewPixelPoint(1207, 749), "Edge of settlement in line with dark patch on island"},
	{87, 1, geom.NewPixelPoint(939, 1087), "Settlement in line with isolated lake"},
	{295, 2, geom.NewPixelPoint(1164, 801), "Trees and edge of V shaped lake"},
	{483, 3, geom.NewPixelPoint(1258, 627), "Blue roofed building in line with larger white building"},
	{555, 3, geom.NewPixelPoint(1040, 903), "Factory with covered conveyer belt"},
	{593, 3, geom.NewPixelPoint(938, 1033), "Tree line with red building behind"},
	{621, 3, geom.NewPixelPoint(840, 1159), "Blue building in line with low white building"},
	{652, 3, geom.NewPixelPoint(736, 1293), "Crossing road with red building beyond"},
	{704, 4, geom.NewPixelPoint(1246, 581), "Crossing road with roundabout beyond"},
	{749, 4, geom.NewPixelPoint(1105, 762), "Crossing boundary fence"},
	{827, 5, geom.NewPixelPoint(1597, 197), "Crossing the threshold"},
	{880, 5, geom.NewPixelPoint(1444, 395), "Start of the first white marker pairs"},
	{888, 5, geom.NewPixelPoint(1418, 423), "End of the first white marker pairs"},
	{932, 5, geom.NewPixelPoint(1290, 585), "Start of the second white marker pairs"},
	{940, 5, geom.NewPixelPoint(1266, 615), "End of the second white marker pairs"},
}

// SurveyPosition is a tile position on the runway plane: X along the runway from the threshold,
// negative on the approach, Y to the right.
type SurveyPosition struct {
	Frame     int
	Tile      int
	XY        geom.Point
	Tolerance float64
	Note      string
}

// RunwaySurvey is the runway geometry measured from the satellite tiles
type RunwaySurvey struct {
	// Length and Heading from the threshold to the runway end on tile 6
	Length     float64
	Heading    float64
	HeadingMin float64
	HeadingMax float64
	// LengthTile7 is the same measurement to the runway end seen on tile 7
	LengthTile7 float64
	Width       float64
	// BoundaryFence is the distance from the threshold to the breached fence
	BoundaryFence float64
	// Threshold is the threshold position on every tile
	Threshold map[int]geom.PixelPoint
	// ApproachStart is the extended centreline point nizhneangarskApproach metres out, on tile 5
	ApproachStart geom.PixelPoint
	Positions     []SurveyPosition
}

// Tiles returns the tile numbers in ascending order
func (rs *RunwaySurvey) Tiles() []int {
	ret := make([]int, 0, len(rs.Threshold))
	for tile := range rs.Threshold {
		ret = append(ret, tile)
	}
	sort.Ints(ret)
	return ret
}

// NizhneangarskSurvey stitches the satellite tiles together and measures runway 22 and
// the approach positions of the AN-24 landing
func NizhneangarskSurvey() (*RunwaySurvey, error) {
	offsets := geom.NewTileOffsets(nizhneangarskTiePoints)
	ref := nizhneangarskReferenceTile
	threshold := nizhneangarskThreshold

	end6, err := offsets.PointTileToTile(6, nizhneangarskEndTile6.Center(), ref)
	if err != nil {
		return nil, errors.Wrap(err, "runway end on tile 6")
	}
	ret := &RunwaySurvey{
		Length:    geom.PixelDistance(threshold, end6, NizhneangarskScale),
		Heading:   geom.PixelBearing(threshold, end6),
		Width:     nizhneangarskRunwayWidth.Diagonal() * NizhneangarskScale,
		Threshold: make(map[int]geom.PixelPoint, len(nizhneangarskTiePoints)+1),
	}
	ret.HeadingMin, ret.HeadingMax = geom.PixelBearingMinMax(threshold, end6, nizhneangarskPickError)

	end7, err := offsets.PointTileToTile(7, nizhneangarskEndTile7.Center(), ref)
	if err != nil {
		return nil, errors.Wrap(err, "runway end on tile 7")
	}
	// Along the tile 6 heading, so a misaligned tile 7 end shows up as a shorter runway
	ret.LengthTile7 = geom.TranslateRotate(end7, ret.Heading, threshold).X * NizhneangarskScale

	fence, err := offsets.DistanceTileToTile(ref, threshold, 7, nizhneangarskBoundaryFence)
	if err != nil {
		return nil, errors.Wrap(err, "boundary fence")
	}
	ret.BoundaryFence = math.Hypot(fence.X, fence.Y) * NizhneangarskScale

	for tile := 1; tile <= 7; tile++ {
		pt, err := offsets.PointTileToTile(ref, threshold, tile)
		if err != nil {
			return nil, errors.Wrapf(err, "threshold on tile %d", tile)
		}
		ret.Threshold[tile] = pt
	}
	ret.ApproachStart = geom.PixelTranslate(threshold, geom.NormalizeDegrees(ret.Heading+180.0), nizhneangarskApproach/NizhneangarskScale)

	transform := geom.ImageTransform{Origin: threshold, AxisBearing: ret.Heading, Scale: NizhneangarskScale}
	positions := make([]SurveyPosition, 0, len(nizhneangarskPositions)+1)
	for _, pos := range nizhneangarskPositions {
		pt, err := offsets.PointTileToTile(pos.tile, pos.pt, ref)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", pos.frame)
		}
		xy := transform.ToLocal(pt)
		positions = append(positions, SurveyPosition{
			Frame:     pos.frame,
			Tile:      pos.tile,
			XY:        xy,
			Tolerance: geom.DistanceTolerance(xy.X),
			Note:      pos.note,
		})
	}
	mid := transform.ToLocal(geom.PixelMidPoint(threshold, end6))
	positions = append(positions, SurveyPosition{
		Tile:      ref,
		XY:        mid,
		Tolerance: geom.DistanceTolerance(mid.X),
		Note:      "Runway mid point",
	})
	ret.Positions = positions
	return ret, nil
}
