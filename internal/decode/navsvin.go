package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const navSvinMinLen = 40

// decodeNavSvin decodes a NAV-SVIN payload (UBX id 0x3B) per spec.md
// §4.3: survey-in duration, mean ECEF position (coarse + high-precision
// components), mean accuracy, observation count, and valid/active flags.
func decodeNavSvin(payload []byte, mono time.Duration) (events.SurveyIn, error) {
	if len(payload) < navSvinMinLen {
		return events.SurveyIn{}, fmt.Errorf("nav-svin: payload too short (%d < %d)", len(payload), navSvinMinLen)
	}

	const hpResolutionCm = 0.01 // 0.1 mm in cm
	meanX := float64(i32(payload, 8)) + float64(i8(payload, 20))*hpResolutionCm
	meanY := float64(i32(payload, 12)) + float64(i8(payload, 21))*hpResolutionCm
	meanZ := float64(i32(payload, 16)) + float64(i8(payload, 22))*hpResolutionCm
	meanAcc := u32(payload, 24)

	svin := events.SurveyIn{
		DurationS:    u32(payload, 4),
		MeanXCm:      meanX,
		MeanYCm:      meanY,
		MeanZCm:      meanZ,
		MeanAccMm:    float64(meanAcc) * 0.1,
		Observations: u32(payload, 28),
		Valid:        payload[36]&0x01 != 0,
		Active:       payload[37]&0x01 != 0,
	}
	svin.Received = events.NewReceived(mono)
	return svin, nil
}
