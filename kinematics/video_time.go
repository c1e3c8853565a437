package kinematics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FramesPerSecond is the frame rate of the source video
const FramesPerSecond = 30

// ffmpegFrameOffset is the difference between ffmpeg image numbers and video frames.
// ffmpeg numbers from 1 and duplicates the first frame, so t=0 is image 2.
const ffmpegFrameOffset = 2

// VideoTime is a position in the video as minutes, seconds and frames.
// Frames may be fractional when a measurement falls between two frames.
type VideoTime struct {
	Min   float64
	Sec   float64
	Frame float64
}

// NewVideoTime validates 0 <= min < 60, 0 <= sec < 60, 0 <= frame < 30
func NewVideoTime(min, sec, frame float64) (VideoTime, error) {
	if !(min >= 0 && min < 60) {
		return VideoTime{}, errors.Wrapf(ErrInvalidVideoTime, "minutes must be 0 <= minutes < 60 not %v", min)
	}
	if !(sec >= 0 && sec < 60) {
		return VideoTime{}, errors.Wrapf(ErrInvalidVideoTime, "seconds must be 0 <= seconds < 60 not %v", sec)
	}
	if !(frame >= 0 && frame < FramesPerSecond) {
		return VideoTime{}, errors.Wrapf(ErrInvalidVideoTime, "frame must be 0 <= frame < %d not %v", FramesPerSecond, frame)
	}
	return VideoTime{Min: min, Sec: sec, Frame: frame}, nil
}

// MustVideoTime is like NewVideoTime but panics on invalid input. It is meant for static tables.
func MustVideoTime(min, sec, frame float64) VideoTime {
	vt, err := NewVideoTime(min, sec, frame)
	if err != nil {
		panic(err)
	}
	return vt
}

// Seconds returns time from the start of the video
func (vt VideoTime) Seconds() float64 {
	return vt.Min*60.0 + vt.Sec + vt.Frame/FramesPerSecond
}

// Before reports whether vt is earlier than other
func (vt VideoTime) Before(other VideoTime) bool {
	return vt.Seconds() < other.Seconds()
}

func (vt VideoTime) String() string {
	return fmt.Sprintf("VideoTime(%02d:%02d:%s)", int(vt.Min), int(vt.Sec), formatFrame(vt.Frame))
}

func formatFrame(frame float64) string {
	if frame == math.Trunc(frame) {
		return fmt.Sprintf("%02d", int(frame))
	}
	return strconv.FormatFloat(frame, 'f', -1, 64)
}

// Timestamp formats the time as "mm:ss:ff" truncating fractional frames
func (vt VideoTime) Timestamp() string {
	t := vt.Seconds()
	mins := int(t) / 60
	secs := int(t) - mins*60
	frames := int(math.Mod(FramesPerSecond*t, FramesPerSecond))
	return fmt.Sprintf("%02d:%02d:%02d", mins, secs, frames)
}

// FrameToVideoTime converts video frame number to time
func FrameToVideoTime(frame int) VideoTime {
	return VideoTime{
		Min:   float64(frame / FramesPerSecond / 60),
		Sec:   float64((frame / FramesPerSecond) % 60),
		Frame: float64(frame % FramesPerSecond),
	}
}

// ToFFmpegTime converts video time to the time of the matching ffmpeg image
func ToFFmpegTime(vt VideoTime) VideoTime {
	return FrameToVideoTime(int(vt.Seconds()*FramesPerSecond + ffmpegFrameOffset))
}

// FromFFmpegTime converts the time of an ffmpeg image to video time
func FromFFmpegTime(vt VideoTime) VideoTime {
	return FrameToVideoTime(int(vt.Seconds()*FramesPerSecond - ffmpegFrameOffset))
}

// FFmpegName returns the name of the ffmpeg image extracted at vt, e.g. "image000256.png"
func FFmpegName(vt VideoTime) string {
	return fmt.Sprintf("image%06d.png", int(vt.Seconds()*FramesPerSecond+ffmpegFrameOffset))
}

// VideoTimeFromFFmpegName converts an ffmpeg image name to video time
func VideoTimeFromFFmpegName(name string) (VideoTime, error) {
	const prefix = "image"
	if !strings.HasPrefix(name, prefix) || len(name) < len(prefix)+6 {
		return VideoTime{}, errors.Wrapf(ErrInvalidVideoTime, "bad ffmpeg name '%s'", name)
	}
	frame, err := strconv.Atoi(name[len(prefix) : len(prefix)+6])
	if err != nil {
		return VideoTime{}, errors.Wrapf(ErrInvalidVideoTime, "bad ffmpeg name '%s'", name)
	}
	if frame < ffmpegFrameOffset {
		return VideoTime{}, errors.Wrapf(ErrInvalidVideoTime, "ffmpeg image %d is before the video starts", frame)
	}
	return FrameToVideoTime(frame - ffmpegFrameOffset), nil
}
