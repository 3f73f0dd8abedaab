package imu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the x-axis label format, local time of day.
const TimeLayout = "15:04:05"

// Scale factors for the raw integer-scaled wire variants.
const (
	milliGPerG     = 1000.0 // ax_mg, ay_mg, az_mg
	centiDPSPerDPS = 100.0  // gx_cds, gy_cds, gz_cds
)

// wireSample mirrors one pub/sub message. Every field is optional:
// devices publish either pre-scaled floats or raw integer-scaled values.
// Unrecognized fields are ignored.
type wireSample struct {
	Ax *float64 `json:"ax"` // g
	Ay *float64 `json:"ay"`
	Az *float64 `json:"az"`

	AxMG *float64 `json:"ax_mg"` // milli-g
	AyMG *float64 `json:"ay_mg"`
	AzMG *float64 `json:"az_mg"`

	Gx *float64 `json:"gx"` // °/s
	Gy *float64 `json:"gy"`
	Gz *float64 `json:"gz"`

	GxCDS *float64 `json:"gx_cds"` // centi-°/s
	GyCDS *float64 `json:"gy_cds"`
	GzCDS *float64 `json:"gz_cds"`
}

var errNotObject = errors.New("payload is not a JSON object")

// resolve picks the pre-scaled value when present, otherwise converts the
// raw integer-scaled variant, otherwise reports the axis as missing.
func resolve(scaled, raw *float64, scale float64) *float64 {
	if scaled != nil {
		return scaled
	}
	if raw != nil {
		v := *raw / scale
		return &v
	}
	return nil
}

// Decode parses one message payload received at time at. It returns an
// AccelSample when at least one accelerometer axis resolved and a
// GyroSample when at least one gyroscope axis resolved; either or both
// may be nil for a valid payload. Payloads that are not a JSON object
// (including bare null) are an error, as are fields of the wrong type.
func Decode(payload []byte, at time.Time) (*AccelSample, *GyroSample, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil, errNotObject
	}

	var w wireSample
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	t := at.Format(TimeLayout)

	var accel *AccelSample
	ax := resolve(w.Ax, w.AxMG, milliGPerG)
	ay := resolve(w.Ay, w.AyMG, milliGPerG)
	az := resolve(w.Az, w.AzMG, milliGPerG)
	if ax != nil || ay != nil || az != nil {
		accel = &AccelSample{T: t, Ax: ax, Ay: ay, Az: az}
	}

	var gyro *GyroSample
	gx := resolve(w.Gx, w.GxCDS, centiDPSPerDPS)
	gy := resolve(w.Gy, w.GyCDS, centiDPSPerDPS)
	gz := resolve(w.Gz, w.GzCDS, centiDPSPerDPS)
	if gx != nil || gy != nil || gz != nil {
		gyro = &GyroSample{T: t, Gx: gx, Gy: gy, Gz: gz}
	}

	return accel, gyro, nil
}
