package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gocv.io/x/gocv"

	"github.com/leomancini/street-metrics/internal/config"
	"github.com/leomancini/street-metrics/internal/logger"
)

// Snapshot filenames encode the capture time in the device's zone.
const filenameLayout = "2006-01-02-15-04"

// Service grabs single frames from camera devices and stores them as
// dated JPEG snapshots under the per-device image directory.
type Service struct {
	imagesDir string
	loc       *time.Location
	logger    *logger.Logger
}

func NewService(imagesDir string, loc *time.Location, logger *logger.Logger) *Service {
	return &Service{
		imagesDir: imagesDir,
		loc:       loc,
		logger:    logger,
	}
}

// Snapshot opens the device's capture source, reads one frame, encodes it
// as JPEG and writes it to <imagesDir>/<device>/<YYYY-MM-DD-HH-MM>.jpg.
// Returns the written filename.
func (s *Service) Snapshot(device config.Device) (string, error) {
	capture, err := openSource(device.Source)
	if err != nil {
		return "", fmt.Errorf("open capture source for %s: %w", device.Name, err)
	}
	defer capture.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := capture.Read(&frame); !ok || frame.Empty() {
		return "", fmt.Errorf("no frame available from %s", device.Name)
	}

	buffer, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return "", fmt.Errorf("encode snapshot for %s: %w", device.Name, err)
	}
	defer buffer.Close()

	dir := filepath.Join(s.imagesDir, device.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	filename := time.Now().In(s.loc).Format(filenameLayout) + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, filename), buffer.GetBytes(), 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info("📸 Captured snapshot %s for device %s", filename, device.Name)
	return filename, nil
}

// openSource builds the capture for a source, which is either a local
// device index ("0") or a stream URL.
func openSource(source string) (*gocv.VideoCapture, error) {
	if index, err := strconv.Atoi(source); err == nil {
		return gocv.OpenVideoCapture(index)
	}
	return gocv.OpenVideoCapture(source)
}
