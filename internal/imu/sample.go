// Package imu decodes IMU telemetry messages into chart-ready samples.
package imu

// AccelSample represents one accelerometer reading in g. Nil axes marshal
// as null so the charts render gaps instead of zeros.
type AccelSample struct {
	T  string   `json:"t"` // local time of day, e.g. "12:34:56"
	Ax *float64 `json:"ax"`
	Ay *float64 `json:"ay"`
	Az *float64 `json:"az"`
}

// GyroSample represents one gyroscope reading in °/s.
type GyroSample struct {
	T  string   `json:"t"`
	Gx *float64 `json:"gx"`
	Gy *float64 `json:"gy"`
	Gz *float64 `json:"gz"`
}
