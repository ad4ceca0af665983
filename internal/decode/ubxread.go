package decode

// Little-endian scalar readers for UBX payloads, grounded in the
// byte-slicing style the gnssgo family uses throughout its NAV message
// decoders (_examples/FengXuebin-gnssgo/src/common.go's U1/U2/U4/I4
// helpers), adapted to plain Go slice indexing.

func u8(b []byte, off int) uint8 { return b[off] }

func i8(b []byte, off int) int8 { return int8(b[off]) }

func u16(b []byte, off int) uint16 {
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func u32(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func i32(b []byte, off int) int32 { return int32(u32(b, off)) }

func i16(b []byte, off int) int16 { return int16(u16(b, off)) }
