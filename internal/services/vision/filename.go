package vision

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot filenames encode the capture time as 2006-01-02-15-04.jpg.
const filenameLayout = "2006-01-02-15-04"

// DescribeCapture composes the instruction fragment about the capture time
// for one image. When the filename follows the naming convention it is
// parsed in loc and the decoded time is spelled out for the model; when it
// does not, ok is false and the fragment falls back to handing the raw
// filename and convention to the model, so callers can tell a decode
// failure apart from a successful parse.
func DescribeCapture(filename string, loc *time.Location) (fragment string, ok bool) {
	stem := strings.TrimSuffix(filename, ".jpg")
	captured, err := time.ParseInLocation(filenameLayout, stem, loc)
	if err != nil {
		return fmt.Sprintf(
			"The image filename is %q which encodes the capture time as YYYY-MM-DD-HH-MM.jpg (timezone: %s). Use this to determine the timestamp, day of week, and time of day.",
			filename, loc.String(),
		), false
	}

	return fmt.Sprintf(
		"The image filename is %q. It was captured on %s (%s). Use this capture time to determine the timestamp, day of week, and time of day.",
		filename, captured.Format("Monday, January 2 2006 at 3:04 PM"), loc.String(),
	), true
}
