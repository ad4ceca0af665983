package decode

import "testing"

func TestDecodeNavDop(t *testing.T) {
	buf := make([]byte, navDopMinLen)
	putU32(buf, 0, 42)
	putU16(buf, 4, 150)
	putU16(buf, 6, 120)
	putU16(buf, 8, 90)
	putU16(buf, 10, 110)
	putU16(buf, 12, 100)
	putU16(buf, 14, 95)
	putU16(buf, 16, 88)

	dop, err := decodeNavDop(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dop.ITowMs != 42 {
		t.Errorf("itow: got %d", dop.ITowMs)
	}
	if dop.GDOP != 1.5 || dop.PDOP != 1.2 || dop.TDOP != 0.9 {
		t.Errorf("dop scaling wrong: %+v", dop)
	}
}

func TestDecodeNavDopTooShort(t *testing.T) {
	if _, err := decodeNavDop(make([]byte, 4), 0); err == nil {
		t.Fatal("expected error")
	}
}
