package geom

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var googleEarthURLRe = regexp.MustCompile(`^(.+?): https://www.google.com/maps/@([-0-9.]+),([-0-9.]+).+$`)

// ParseGoogleEarthURL splits "label: https://www.google.com/maps/@lat,long,..." into its label and position
func ParseGoogleEarthURL(line string) (string, LatLong, error) {
	m := googleEarthURLRe.FindStringSubmatch(line)
	if m == nil {
		return "", LatLong{}, errors.Wrapf(ErrBadGoogleEarthURL, "'%s'", line)
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", LatLong{}, errors.Wrapf(ErrBadGoogleEarthURL, "latitude '%s'", m[2])
	}
	long, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return "", LatLong{}, errors.Wrapf(ErrBadGoogleEarthURL, "longitude '%s'", m[3])
	}
	return m[1], LatLong{Lat: lat, Long: long}, nil
}

// ParseGoogleEarthURLs reads one labelled URL per line. Blank lines and lines starting with '#' are skipped.
// Labels are returned in the order they appear.
func ParseGoogleEarthURLs(text string) (map[string]LatLong, []string, error) {
	positions := make(map[string]LatLong)
	labels := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(text))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label, ll, err := ParseGoogleEarthURL(line)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if _, ok := positions[label]; !ok {
			labels = append(labels, label)
		}
		positions[label] = ll
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "can't read Google Earth URLs")
	}
	return positions, labels, nil
}

// FormatGoogleEarthURL returns a satellite view URL centred on ll
func FormatGoogleEarthURL(ll LatLong) string {
	return fmt.Sprintf("https://www.google.com/maps/@%.7f,%.7f,55m/data=!3m1!1e3", ll.Lat, ll.Long)
}
