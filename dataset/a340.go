// Package dataset holds the measurements of the A340-300 take off from runway 15 at SBKP (Viracopos).
// Times are mm:ss:ff at 30 frames per second from the start of the video.
package dataset

import (
	"github.com/LdDl/trajectory-go/geom"
	kin "github.com/LdDl/trajectory-go/kinematics"
)

// A340 is the A340-300 9H-BIG, nose to tail cone and span in metres
var A340 = kin.Aircraft{Name: "A340-300", Length: 63.6, Span: 60.3}

const (
	// RunwayLength of runway 15/33 in metres
	RunwayLength = 3240.0
	// AspectError is the +/- error of the table aspects in degrees
	AspectError = 5.0
	// ScreenshotWidth of the screenshots used for apparent lengths in pixels
	ScreenshotWidth = 2448.0
	// WingTipFrameWidth of the ffmpeg frames used for wing tip selections in pixels
	WingTipFrameWidth  = 1280.0
	WingTipFrameHeight = 720.0
)

var (
	VideoBegin    = vt(0, 0, 0)
	NoseWheelOff  = vt(0, 17, 27)
	MainWheelsOff = vt(0, 25, 19)
	EndAsphalt    = vt(0, 27, 24)
	VideoEnd      = vt(0, 35, 20)
)

func vt(min, sec, frame float64) kin.VideoTime {
	return kin.MustVideoTime(min, sec, frame)
}

// Transits of the whole fuselage past fixed objects
var Transits = []kin.AircraftTransit{
	{From: vt(0, 0, 20), To: vt(0, 1, 23), Note: "Near lamp post 1."},
	{From: vt(0, 1, 27), To: vt(0, 2, 29), Note: "Far floodlight number 1."},
	{From: vt(0, 2, 11), To: vt(0, 3, 13), Note: "Far floodlight number 2."},
	{From: vt(0, 2, 25), To: vt(0, 3, 27), Note: "Far floodlight number 3."},
	{From: vt(0, 3, 9), To: vt(0, 4, 10), Note: "Far floodlight number 4."},
	{From: vt(0, 3, 23), To: vt(0, 4, 24), Note: "Far floodlight number 5."},
	{From: vt(0, 4, 7), To: vt(0, 5, 7), Note: "Far floodlight number 6."},
	{From: vt(0, 4, 13), To: vt(0, 5, 14), Note: "Near lamp post 2."},
	{From: vt(0, 4, 20), To: vt(0, 5, 20), Note: "Near lamp post 3."},
	{From: vt(0, 5, 16), To: vt(0, 6, 16), Note: "Near lamp post 4."},
	{From: vt(0, 6, 12), To: vt(0, 7, 11), Note: "Far comms tower number 1."},
	{From: vt(0, 7, 24), To: vt(0, 8, 22), Note: "Far comms tower number 2."},
	{From: vt(0, 8, 14), To: vt(0, 9, 11), Note: "Far comms tower number 3."},
	{From: vt(0, 9, 3), To: vt(0, 10, 0), Note: "Far comms tower number 4."},
	{From: vt(0, 9, 11), To: vt(0, 10, 8), Note: "Near lamp post number 5."},
	{From: vt(0, 9, 23), To: vt(0, 10, 20), Note: "Far comms tower number 5."},
	{From: vt(0, 10, 3), To: vt(0, 11, 0), Note: "Far floodlight number 7."},
	{From: vt(0, 10, 8), To: vt(0, 11, 5), Note: "Near lamp post number 6."},
	{From: vt(0, 10, 12), To: vt(0, 11, 9), Note: "Far comms tower number 6."},
	{From: vt(0, 11, 2), To: vt(0, 11, 29), Note: "Far comms tower number 7."},
	{From: vt(0, 11, 19), To: vt(0, 12, 15), Note: "Far comms tower number 8."},
	{From: vt(0, 12, 0), To: vt(0, 12, 26), Note: "Far comms tower number 9."},
	{From: vt(0, 12, 19), To: vt(0, 13, 16), Note: "Far comms tower number 10."},
	{From: vt(0, 13, 1), To: vt(0, 13, 27), Note: "Left edge of distant building."},
	{From: vt(0, 13, 8), To: vt(0, 14, 4), Note: "Far comms tower number 11."},
	{From: vt(0, 13, 11), To: vt(0, 14, 6), Note: "Near lamp post number 7."},
	{From: vt(0, 13, 12), To: vt(0, 14, 8), Note: "Near lamp post number 8."},
	{From: vt(0, 13, 25), To: vt(0, 14, 21), Note: "Left palm tree of a pair (tail cone obscured)."},
	{From: vt(0, 14, 14), To: vt(0, 15, 10), Note: "Palm tree (tail cone obscured)."},
	{From: vt(0, 15, 5), To: vt(0, 16, 0), Note: "Far comms tower number 12."},
	{From: vt(0, 15, 11), To: vt(0, 16, 6), Note: "Near lamp post number 9."},
	{From: vt(0, 15, 24), To: vt(0, 16, 18.5), Note: "Near lamp post number 10."},
	{From: vt(0, 16, 3), To: vt(0, 16, 27), Note: "Far comms tower number 13."},
	{From: vt(0, 16, 16.5), To: vt(0, 17, 11), Note: "Far comms tower number 14."},
	{From: vt(0, 16, 27), To: vt(0, 17, 21), Note: "Far comms tower number 15."},
	{From: vt(0, 17, 9), To: vt(0, 18, 3), Note: "Centre of control tower (also near lamp post number 11."},
	{From: vt(0, 18, 2), To: vt(0, 18, 26), Note: "Far comms tower number 16."},
	{From: vt(0, 18, 11), To: vt(0, 19, 5), Note: "Far comms tower number 17."},
	{From: vt(0, 19, 9), To: vt(0, 20, 2), Note: "Extreme right edge of near signage #1."},
	{From: vt(0, 19, 26.5), To: vt(0, 20, 19), Note: "Extreme left edge of near signage #1."},
	{From: vt(0, 20, 20), To: vt(0, 21, 12.5), Note: "Centre of chequered control point."},
	{From: vt(0, 21, 15), To: vt(0, 22, 8), Note: "Near lamp post number 11."},
	{From: vt(0, 21, 28), To: vt(0, 22, 20), Note: "Antenna #1."},
	{From: vt(0, 22, 6), To: vt(0, 22, 29), Note: "Antenna #2."},
	{From: vt(0, 22, 29), To: vt(0, 23, 21.5), Note: "Antenna beyond chequered building."},
	{From: vt(0, 24, 3), To: vt(0, 24, 25), Note: "Right edge of far tree."},
	{From: vt(0, 24, 14), To: vt(0, 25, 5), Note: "Right edge of far treeline."},
	{From: vt(0, 26, 6.5), To: vt(0, 26, 28.5), Note: "Extreme left edge of near signage #2."},
	{From: vt(0, 27, 20), To: vt(0, 28, 11), Note: "Distant large radio tower."},
	{From: vt(0, 28, 22), To: vt(0, 29, 13), Note: "Large tower."},
	{From: vt(0, 31, 23), To: vt(0, 32, 13), Note: "Edge of cables in the foreground."},
	{From: vt(0, 32, 2), To: vt(0, 32, 22), Note: "Right edge of poll for cables in the foreground."},
}

// Aspects measured by lining up parts of the aircraft. Angles are 360 minus the measured
// angle left of the line of sight.
var Aspects = []kin.AircraftAspect{
	{Time: vt(0, 1, 5), Angle: 360 - 18.8, Error: AspectError, Note: "Nose to LH front of number 3."},
	{Time: vt(0, 4, 1), Angle: 360 - 21.5, Error: AspectError, Note: "Nose to front centre of number 3."},
	{Time: vt(0, 6, 24), Angle: 360 - 23.7, Error: AspectError, Note: "Nose to RH front of number 3."},
	{Time: vt(0, 15, 15), Angle: 360 - 29.4, Error: AspectError, Note: "Number 1 to tailfin tip."},
	// Two measurements of the same frame, averaged
	{Time: vt(0, 16, 9), Angle: 360 - (32.9+32.0)/2, Error: AspectError, Note: "Average of:Nose to front centre number 4 and Front right number 1 to left tail L/E root."},
	{Time: vt(0, 17, 23), Angle: 360 - 36.5, Error: AspectError, Note: "Right windscreen to right wing tip."},
	{Time: vt(0, 21, 18), Angle: 360 - 44.5, Error: AspectError, Note: "Left wing tip to left tail tip."},
	{Time: vt(0, 23, 28), Angle: 360 - 55.3, Error: AspectError, Note: "Left wing tip to tail fin tip."},
	{Time: vt(0, 25, 19), Angle: 360 - 65.1, Error: AspectError, Note: "Left wing tip to left tail L/E root."},
	{Time: vt(0, 32, 0), Angle: 360 - 90.0, Error: AspectError, Note: "Engines, U/C line up."},
	{Time: vt(0, 32, 18), Angle: 360 - 105.8, Error: AspectError, Note: "Left wing tip to end of row of windows."},
}

// wingTipSelection is a tip to tip selection on an ffmpeg frame. Width is the span and height the
// nose to tail length, both in pixels. Span is negative once the observer is behind the lateral axis,
// length is negative while the observer is left of the aircraft axis.
type wingTipSelection struct {
	image  string
	span   float64
	length float64
	note   string
}

var wingTipSelections = []wingTipSelection{
	{"image000023.png", 735, -257, "Tail somewhat obscured, top of fin used"},
	{"image000046.png", 746, -267, ""},
	{"image000082.png", 767, -281, ""},
	{"image000092.png", 775, -289, ""},
	{"image000122.png", 787, -309, ""},
	{"image000152.png", 807, -329, ""},
	{"image000182.png", 825, -356, ""},
	{"image000205.png", 845, -371, "Nose obscured in image 212"},
	{"image000242.png", 873, -403, ""},
	{"image000272.png", 897, -420, ""},
	{"image000294.png", 921, -439, ""},
	{"image000362.png", 593, -313, ""},
	{"image000422.png", 643, -379, ""},
	{"image000482.png", 683, -455, ""},
	{"image000542.png", 719, -557, ""},
	{"image000564.png", 729, -599, ""},
	{"image000571.png", 733, -611, ""},
	{"image000811.png", 283, -883, ""},
	{"image000821.png", 263, -931, ""},
	{"image000831.png", 257, -953, ""},
	{"image000846.png", 207, -979, ""},
	{"image000856.png", 177, -997, ""},
	{"image000866.png", 141, -1009, ""},
	{"image000901.png", 3, -751, ""},
	{"image000911.png", -28, -767, ""},
	{"image000921.png", -55, -765, ""},
	{"image000931.png", -81, -759, ""},
	{"image000941.png", -107, -753, ""},
	{"image000951.png", -133, -743, ""},
	{"image000961.png", -157, -741, ""},
	{"image000971.png", -219, -889, ""},
	{"image000980.png", -241, -879, ""},
	{"image000991.png", -269, -861, ""},
	{"image001001.png", -293, -839, ""},
	{"image001010.png", -313, -819, "Last usable frame."},
}

// WingTips converts the frame selections to wing tip aspects
func WingTips() ([]kin.WingTipAspect, error) {
	ret := make([]kin.WingTipAspect, 0, len(wingTipSelections))
	for _, sel := range wingTipSelections {
		wt, err := kin.NewWingTipAspectFromSelection(sel.image, geom.NewRect(0, 0, sel.span, sel.length), sel.note)
		if err != nil {
			return nil, err
		}
		ret = append(ret, wt)
	}
	return ret, nil
}

// Pitches of the fuselage, nose up positive
var Pitches = []kin.AircraftPitch{
	{Time: vt(0, 0, 0), Angle: -2.9, Note: "Start of video"},
	{Time: vt(0, 18, 0), Angle: -1.5, Note: "Nose wheel off."},
	{Time: vt(0, 19, 0), Angle: 360.0 - 359.2, Note: "Nose wheel off."},
	{Time: vt(0, 19, 15), Angle: 360.0 - 358.4},
	{Time: vt(0, 20, 14), Angle: 360.0 - 357.3},
	{Time: vt(0, 22, 0), Angle: 360.0 - 355.6},
	{Time: vt(0, 23, 0), Angle: 360.0 - 354.3},
	{Time: vt(0, 24, 0), Angle: 360.0 - 353.8},
	{Time: vt(0, 25, 0), Angle: 360.0 - 353.9, Note: "Main wheels coming off"},
	{Time: vt(0, 26, 0), Angle: 360.0 - 353.1},
	{Time: vt(0, 27, 0), Angle: 360.0 - 353.3},
	{Time: vt(0, 28, 0), Angle: 360.0 - 353.6},
	{Time: vt(0, 29, 0), Angle: 360.0 - 353.3},
	{Time: vt(0, 30, 0), Angle: 360.0 - 351.6},
	{Time: vt(0, 31, 0), Angle: 360.0 - 350.5},
	{Time: vt(0, 32, 0), Angle: 360.0 - 350.6},
	{Time: vt(0, 33, 20), Angle: 360.0 - 350.6, Note: "Last usable frame."},
}

// ApparentLengths of the aircraft on full resolution screenshots
var ApparentLengths = []kin.ApparentLength{
	{Time: vt(0, 2, 0), Pixels: 542},
	{Time: vt(0, 3, 0), Pixels: 557},
	{Time: vt(0, 4, 0), Pixels: 595},
	{Time: vt(0, 5, 0), Pixels: 627},
	{Time: vt(0, 6, 0), Pixels: 671},
	{Time: vt(0, 7, 0), Pixels: 768},
	{Time: vt(0, 8, 0), Pixels: 765},
	{Time: vt(0, 9, 0), Pixels: 797},
	{Time: vt(0, 10, 0), Pixels: 848},
	{Time: vt(0, 11, 0), Pixels: 913},
	{Time: vt(0, 12, 0), Pixels: 595},
	{Time: vt(0, 13, 0), Pixels: 666},
	{Time: vt(0, 14, 0), Pixels: 719},
	{Time: vt(0, 15, 0), Pixels: 792},
	{Time: vt(0, 16, 0), Pixels: 865},
	{Time: vt(0, 17, 0), Pixels: 959},
	{Time: vt(0, 18, 0), Pixels: 1063},
	{Time: vt(0, 19, 0), Pixels: 1180},
	{Time: vt(0, 20, 0), Pixels: 1300}, // Tail obscured
	{Time: vt(0, 21, 0), Pixels: 1448}, // Tail obscured
	{Time: vt(0, 22, 0), Pixels: 1631},
	{Time: vt(0, 23, 0), Pixels: 1192},
	{Time: vt(0, 24, 0), Pixels: 1313},
	{Time: vt(0, 25, 0), Pixels: 1456},
	{Time: vt(0, 27, 0), Pixels: 1738},
	{Time: vt(0, 28, 0), Pixels: 1856},
	{Time: vt(0, 29, 0), Pixels: 1934},
	{Time: vt(0, 30, 0), Pixels: 1425},
	{Time: vt(0, 31, 0), Pixels: 1437},
	{Time: vt(0, 32, 0), Pixels: 1407},
	{Time: vt(0, 33, 0), Pixels: 1633},
}

// Events of the take off. The start of roll time is computed from the ground speed fits.
var Events = []kin.TimedEvent{
	{Label: "Start of take off", StartOfRoll: true, Note: "Estimated"},
	{Label: "Video starts", Time: VideoBegin.Seconds()},
	{Label: "Nose wheel off", Time: NoseWheelOff.Seconds(), Note: "Rotation of ~1.4 °/s to t=23"},
	{Label: "Main wheels off", Time: MainWheelsOff.Seconds()},
	{Label: "End asphalt", Time: EndAsphalt.Seconds(), Note: "Used as a datum for some calculations."},
	{Label: "Video ends", Time: VideoEnd.Seconds()},
}
