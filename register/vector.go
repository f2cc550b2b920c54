package register

// MMX/XMM/YMM/ZMM vector registers. ZMM16..31 only exist under EVEX
// encodings (spec section 3.2 invariant: legacy/VEX/XOP encodings cannot
// address them), a constraint enforced by the decoder rather than here.

var (
	MM0, MM1, MM2, MM3, MM4, MM5, MM6, MM7 Register

	XMM0, XMM1, XMM2, XMM3, XMM4, XMM5, XMM6, XMM7     Register
	XMM8, XMM9, XMM10, XMM11, XMM12, XMM13, XMM14, XMM15 Register

	YMM0, YMM1, YMM2, YMM3, YMM4, YMM5, YMM6, YMM7     Register
	YMM8, YMM9, YMM10, YMM11, YMM12, YMM13, YMM14, YMM15 Register

	ZMM0, ZMM1, ZMM2, ZMM3, ZMM4, ZMM5, ZMM6, ZMM7         Register
	ZMM8, ZMM9, ZMM10, ZMM11, ZMM12, ZMM13, ZMM14, ZMM15   Register
	ZMM16, ZMM17, ZMM18, ZMM19, ZMM20, ZMM21, ZMM22, ZMM23 Register
	ZMM24, ZMM25, ZMM26, ZMM27, ZMM28, ZMM29, ZMM30, ZMM31 Register
)

func buildVector() {
	mm := []*Register{&MM0, &MM1, &MM2, &MM3, &MM4, &MM5, &MM6, &MM7}
	for i, p := range mm {
		*p = register("mm"+digits(i), ClassMMX, byte(i), 64)
	}

	xmm := []*Register{&XMM0, &XMM1, &XMM2, &XMM3, &XMM4, &XMM5, &XMM6, &XMM7,
		&XMM8, &XMM9, &XMM10, &XMM11, &XMM12, &XMM13, &XMM14, &XMM15}
	for i, p := range xmm {
		*p = register("xmm"+digits(i), ClassXMM, byte(i), 128)
	}

	ymm := []*Register{&YMM0, &YMM1, &YMM2, &YMM3, &YMM4, &YMM5, &YMM6, &YMM7,
		&YMM8, &YMM9, &YMM10, &YMM11, &YMM12, &YMM13, &YMM14, &YMM15}
	for i, p := range ymm {
		*p = register("ymm"+digits(i), ClassYMM, byte(i), 256)
	}

	zmm := []*Register{&ZMM0, &ZMM1, &ZMM2, &ZMM3, &ZMM4, &ZMM5, &ZMM6, &ZMM7,
		&ZMM8, &ZMM9, &ZMM10, &ZMM11, &ZMM12, &ZMM13, &ZMM14, &ZMM15,
		&ZMM16, &ZMM17, &ZMM18, &ZMM19, &ZMM20, &ZMM21, &ZMM22, &ZMM23,
		&ZMM24, &ZMM25, &ZMM26, &ZMM27, &ZMM28, &ZMM29, &ZMM30, &ZMM31}
	for i, p := range zmm {
		*p = register("zmm"+digits(i), ClassZMM, byte(i), 512)
	}
}

// digits renders a small non-negative int without pulling in strconv,
// matching enum.itoa's allocation-light style for static init.
func digits(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
