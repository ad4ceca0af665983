package decode

import "testing"

func TestDecodeNavSvin(t *testing.T) {
	buf := make([]byte, navSvinMinLen)
	putU32(buf, 4, 600)
	putI32(buf, 8, 100000)
	putI32(buf, 12, 200000)
	putI32(buf, 16, 300000)
	buf[20] = 5  // +0.05 cm
	buf[21] = 0
	buf[22] = 0
	putU32(buf, 24, 1200)
	putU32(buf, 28, 900)
	buf[36] = 1
	buf[37] = 1

	svin, err := decodeNavSvin(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svin.DurationS != 600 {
		t.Errorf("duration: got %d", svin.DurationS)
	}
	if svin.MeanXCm != 100000.05 {
		t.Errorf("meanX: got %f", svin.MeanXCm)
	}
	if !svin.Valid || !svin.Active {
		t.Error("expected valid and active")
	}
	if svin.Observations != 900 {
		t.Errorf("observations: got %d", svin.Observations)
	}
}

func TestDecodeNavSvinTooShort(t *testing.T) {
	if _, err := decodeNavSvin(make([]byte, 10), 0); err == nil {
		t.Fatal("expected error")
	}
}
