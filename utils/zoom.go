package utils

import "math"

// FocalLengthToZoom maps a lens focal length in millimetres to a camera zoom
// factor in [0,1], logarithmic across the device lens range so that equal
// zoom steps feel like equal changes in field of view. Values outside the
// range clamp to the endpoints.
func FocalLengthToZoom(focalLength, minFocal, maxFocal float64) float64 {
	if minFocal <= 0 || maxFocal <= minFocal {
		return 0
	}
	if focalLength <= minFocal {
		return 0
	}
	if focalLength >= maxFocal {
		return 1
	}

	return math.Log(focalLength/minFocal) / math.Log(maxFocal/minFocal)
}

// ZoomToFocalLength is the inverse of FocalLengthToZoom.
func ZoomToFocalLength(zoom, minFocal, maxFocal float64) float64 {
	if minFocal <= 0 || maxFocal <= minFocal {
		return minFocal
	}
	if zoom <= 0 {
		return minFocal
	}
	if zoom >= 1 {
		return maxFocal
	}

	return minFocal * math.Pow(maxFocal/minFocal, zoom)
}
