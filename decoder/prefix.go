package decoder

import "github.com/relsig/x86isa/enum"

// legacyPrefixState accumulates the effect of the legacy prefix-absorption
// step (spec section 4.1 step 1) before encoding dispatch runs.
type legacyPrefixState struct {
	hasLock        bool
	segOverride    byte // register.SegEncodingXX, 0xFF = none
	operandSize66  bool
	addressSize67  bool
	hasF2          bool
	hasF3          bool
}

func newLegacyPrefixState() legacyPrefixState {
	return legacyPrefixState{segOverride: 0xFF}
}

// absorbLegacyPrefixes consumes 0xF0/segment-override/0x66/0x67/0xF2/0xF3
// bytes one at a time, tracking "last wins" for each prefix group (spec
// section 4.1 step 1, and the "last wins" open-question resolution in
// DESIGN.md).
func absorbLegacyPrefixes(c *cursor) (legacyPrefixState, error) {
	st := newLegacyPrefixState()
	for {
		if c.pos >= 15 {
			return st, enum.NewErrorAt(enum.CodeInstructionTooLong, c.pos, "legacy prefix run exceeds 15 bytes")
		}
		b, ok := c.peek()
		if !ok {
			return st, nil
		}
		switch b {
		case 0xF0:
			st.hasLock = true
		case 0x2E:
			st.segOverride = 1 // CS
		case 0x36:
			st.segOverride = 2 // SS
		case 0x3E:
			st.segOverride = 3 // DS
		case 0x26:
			st.segOverride = 0 // ES
		case 0x64:
			st.segOverride = 4 // FS
		case 0x65:
			st.segOverride = 5 // GS
		case 0x66:
			st.operandSize66 = true
		case 0x67:
			st.addressSize67 = true
		case 0xF2:
			st.hasF2 = true
			st.hasF3 = false
		case 0xF3:
			st.hasF3 = true
			st.hasF2 = false
		default:
			return st, nil
		}
		c.pos++
	}
}

// encodingContext is everything the dispatch step (spec section 4.1 step 2)
// determines about which prefix family follows the legacy run.
type encodingContext struct {
	encoding enum.EncodingClass
	raw      RawBlock
}

// dispatchEncoding classifies the byte(s) following the legacy prefix run
// and consumes the corresponding prefix bytes, leaving the cursor
// positioned at the first opcode byte (spec section 4.1 step 2).
func dispatchEncoding(c *cursor, d *Decoder, legacy legacyPrefixState) (encodingContext, error) {
	var ctx encodingContext

	b0, ok := c.peek()
	if !ok {
		return ctx, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "no byte after legacy prefixes")
	}

	switch {
	case b0 == 0xC4 || b0 == 0xC5:
		if !vexContextAllows(c, d) {
			break
		}
		if legacy.hasLock || legacy.operandSize66 || legacy.hasF2 || legacy.hasF3 {
			return ctx, enum.NewErrorAt(enum.CodeIllegalLegacyPfx, c.pos, "legacy prefix before VEX")
		}
		return parseVEX(c)

	case b0 == 0x62:
		if !vexContextAllows(c, d) {
			break
		}
		if legacy.hasLock || legacy.operandSize66 || legacy.hasF2 || legacy.hasF3 {
			return ctx, enum.NewErrorAt(enum.CodeIllegalLegacyPfx, c.pos, "legacy prefix before EVEX/MVEX")
		}
		if d.ModeEnabled(enum.ModeFlagKNC) {
			return parseMVEX(c)
		}
		return parseEVEX(c)

	case b0 == 0x8F:
		mapByte, ok2 := c.peekAt(1)
		if ok2 && mapByte&0x1F != 0 && vexContextAllowsAt(c, d, 1) {
			if legacy.hasLock || legacy.operandSize66 || legacy.hasF2 || legacy.hasF3 {
				return ctx, enum.NewErrorAt(enum.CodeIllegalLegacyPfx, c.pos, "legacy prefix before XOP")
			}
			return parseXOP(c)
		}

	case b0 >= 0x40 && b0 <= 0x4F && d.mode.Is64():
		return parseREX(c)
	}

	ctx.encoding = enum.EncodingLegacy
	return ctx, nil
}

// vexContextAllows reports whether a VEX/EVEX lead byte at the cursor's
// current position should be treated as a prefix rather than a legacy
// opcode: always true in 64-bit mode; in non-64-bit modes only when the
// byte immediately after the lead byte, read as a ModRM, has mod == 11,
// which a genuine legacy instruction at this position could never produce
// here (spec section 4.1 step 2).
func vexContextAllows(c *cursor, d *Decoder) bool {
	return vexContextAllowsAt(c, d, 1)
}

func vexContextAllowsAt(c *cursor, d *Decoder, modrmOffset int) bool {
	if d.mode.Is64() {
		return true
	}
	b, ok := c.peekAt(modrmOffset)
	if !ok {
		return false
	}
	return b>>6 == 3
}

func parseREX(c *cursor) (encodingContext, error) {
	var ctx encodingContext
	b, _ := c.next()
	for {
		nb, ok := c.peek()
		if ok && nb >= 0x40 && nb <= 0x4F {
			// A REX immediately followed by another REX: the first is
			// ignored (spec section 4.1 step 2); keep consuming.
			b, _ = c.next()
			continue
		}
		break
	}
	ctx.encoding = enum.EncodingLegacy
	ctx.raw.REX = RawREX{
		Present: true,
		W:       b&0x08 != 0,
		R:       b&0x04 != 0,
		X:       b&0x02 != 0,
		B:       b&0x01 != 0,
	}
	return ctx, nil
}

func parseVEX(c *cursor) (encodingContext, error) {
	var ctx encodingContext
	lead, _ := c.next()
	ctx.encoding = enum.EncodingVEX
	if lead == 0xC5 {
		b, ok := c.next()
		if !ok {
			return ctx, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated 2-byte VEX")
		}
		ctx.raw.VEX = RawVEX{
			Present: true, TwoByte: true,
			R:    b&0x80 == 0,
			VVVV: (^(b >> 3)) & 0xF,
			L:    b&0x04 != 0,
			Map:  enum.OpcodeMap0F,
			PP:   mandatoryFromPP(b & 0x3),
		}
		return ctx, nil
	}
	b1, ok1 := c.next()
	b2, ok2 := c.next()
	if !ok1 || !ok2 {
		return ctx, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated 3-byte VEX")
	}
	ctx.raw.VEX = RawVEX{
		Present: true, TwoByte: false,
		R:    b1&0x80 == 0,
		X:    b1&0x40 == 0,
		B:    b1&0x20 == 0,
		Map:  mapFromMMMMM(b1 & 0x1F),
		W:    b2&0x80 != 0,
		VVVV: (^(b2 >> 3)) & 0xF,
		L:    b2&0x04 != 0,
		PP:   mandatoryFromPP(b2 & 0x3),
	}
	return ctx, nil
}

func parseXOP(c *cursor) (encodingContext, error) {
	var ctx encodingContext
	c.next() // 0x8F
	b1, ok1 := c.next()
	b2, ok2 := c.next()
	if !ok1 || !ok2 {
		return ctx, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated XOP")
	}
	mmmmm := b1 & 0x1F
	var m enum.OpcodeMap
	switch mmmmm {
	case 8:
		m = enum.OpcodeMapXOP8
	case 9:
		m = enum.OpcodeMapXOP9
	case 10:
		m = enum.OpcodeMapXOPA
	default:
		return ctx, enum.NewErrorAt(enum.CodeInvalidMap, c.pos, "reserved XOP map field")
	}
	ctx.encoding = enum.EncodingXOP
	ctx.raw.XOP = RawXOP{
		Present: true,
		R:       b1&0x80 == 0,
		X:       b1&0x40 == 0,
		B:       b1&0x20 == 0,
		Map:     m,
		W:       b2&0x80 != 0,
		VVVV:    (^(b2 >> 3)) & 0xF,
		L:       b2&0x04 != 0,
		PP:      mandatoryFromPP(b2 & 0x3),
	}
	return ctx, nil
}

func parseEVEX(c *cursor) (encodingContext, error) {
	var ctx encodingContext
	c.next() // 0x62
	p0, ok0 := c.next()
	p1, ok1 := c.next()
	p2, ok2 := c.next()
	if !ok0 || !ok1 || !ok2 {
		return ctx, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated EVEX")
	}
	if p1&0x04 == 0 {
		return ctx, enum.NewErrorAt(enum.CodeMalformedEvex, c.pos, "EVEX.P1 reserved bit must be 1")
	}
	mm := p0 & 0x3
	var m enum.OpcodeMap
	switch mm {
	case 1:
		m = enum.OpcodeMap0F
	case 2:
		m = enum.OpcodeMap0F38
	case 3:
		m = enum.OpcodeMap0F3A
	default:
		return ctx, enum.NewErrorAt(enum.CodeInvalidMap, c.pos, "reserved EVEX map field")
	}
	ctx.encoding = enum.EncodingEVEX
	ctx.raw.EVEX = RawEVEX{
		Present: true,
		R:       p0&0x80 == 0,
		X:       p0&0x40 == 0,
		B:       p0&0x20 == 0,
		Rp:      p0&0x10 == 0,
		Map:     m,
		W:       p1&0x80 != 0,
		VVVV:    (^(p1 >> 3)) & 0xF,
		PP:      mandatoryFromPP(p1 & 0x3),
		Z:       p2&0x80 != 0,
		LL:      (p2 >> 5) & 0x3,
		BBit:    p2&0x10 != 0,
		Vp:      p2&0x08 == 0,
		AAA:     p2 & 0x7,
	}
	return ctx, nil
}

func parseMVEX(c *cursor) (encodingContext, error) {
	var ctx encodingContext
	c.next() // 0x62
	p0, ok0 := c.next()
	p1, ok1 := c.next()
	p2, ok2 := c.next()
	if !ok0 || !ok1 || !ok2 {
		return ctx, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated MVEX")
	}
	mm := p0 & 0x3
	var m enum.OpcodeMap
	switch mm {
	case 1:
		m = enum.OpcodeMap0F
	case 2:
		m = enum.OpcodeMap0F38
	case 3:
		m = enum.OpcodeMap0F3A
	default:
		return ctx, enum.NewErrorAt(enum.CodeInvalidMap, c.pos, "reserved MVEX map field")
	}
	ctx.encoding = enum.EncodingMVEX
	ctx.raw.MVEX = RawMVEX{
		Present: true,
		R:       p0&0x80 == 0,
		X:       p0&0x40 == 0,
		B:       p0&0x20 == 0,
		Rp:      p0&0x10 == 0,
		Map:     m,
		W:       p1&0x80 != 0,
		VVVV:    (^(p1 >> 3)) & 0xF,
		PP:      mandatoryFromPP(p1 & 0x3),
		E:       p2&0x10 != 0,
		SSS:     (p2 >> 1) & 0x7,
		Vp:      p2&0x08 == 0,
		KKK:     0,
	}
	return ctx, nil
}

func mandatoryFromPP(pp byte) enum.MandatoryPrefix {
	switch pp & 0x3 {
	case 1:
		return enum.Mandatory66
	case 2:
		return enum.MandatoryF3
	case 3:
		return enum.MandatoryF2
	default:
		return enum.MandatoryNone
	}
}

func mapFromMMMMM(mmmmm byte) enum.OpcodeMap {
	switch mmmmm {
	case 1:
		return enum.OpcodeMap0F
	case 2:
		return enum.OpcodeMap0F38
	case 3:
		return enum.OpcodeMap0F3A
	default:
		return enum.OpcodeMap0F
	}
}
