package decode

import "testing"

func TestDecodeNavSig(t *testing.T) {
	buf := make([]byte, navSigHeaderLen+2*navSigRecordLen)
	buf[5] = 2

	off := navSigHeaderLen
	buf[off+0] = 0 // gnssId GPS
	buf[off+1] = 5
	buf[off+2] = 1
	buf[off+4] = 40 // cno
	buf[off+6] = 7  // quality
	var flags uint16 = 0x01 | 0x08 | 0x10 | 0x20 | (3 << 6)
	putU16(buf, off+12, flags)

	sig, err := decodeNavSig(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sig.Signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(sig.Signals))
	}
	s := sig.Signals[0]
	if s.SvID != 5 || s.SigID != 1 || s.CnoDbHz != 40 || s.Quality != 7 {
		t.Errorf("unexpected signal record: %+v", s)
	}
	if !s.PrUsed || !s.CrUsed || !s.DoUsed {
		t.Errorf("expected all used flags set: %+v", s)
	}
	if s.CorrectionsUsed != 3 {
		t.Errorf("correctionsUsed: got %d", s.CorrectionsUsed)
	}
}

func TestDecodeNavSigTooShortForDeclaredCount(t *testing.T) {
	buf := make([]byte, navSigHeaderLen)
	buf[5] = 1
	if _, err := decodeNavSig(buf, 0); err == nil {
		t.Fatal("expected error")
	}
}
