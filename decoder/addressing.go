package decoder

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/register"
)

// decodedAddress is the fully resolved (segment, base, index, scale, disp)
// tuple a ModRM/SIB/displacement harvest produces, independent of which
// DecodedOperand it eventually feeds (spec section 4.1 step 8).
type decodedAddress struct {
	isRegister bool // mod == 3: rm names a register directly, not memory
	base       register.Register
	index      register.Register
	scale      int
	hasDisp    bool
	disp       int64
	dispSize   int
	isRIPRel   bool
}

// harvestModRM consumes the ModRM byte (spec section 4.1 step 4).
func harvestModRM(c *cursor) (RawModRM, error) {
	b, ok := c.next()
	if !ok {
		return RawModRM{}, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated ModRM")
	}
	return RawModRM{Present: true, Mod: b >> 6, Reg: (b >> 3) & 0x7, Rm: b & 0x7}, nil
}

// resolveAddressing interprets a harvested ModRM (plus an optional SIB and
// displacement it consumes as needed) into a decodedAddress, for 32/64-bit
// addressing forms (spec section 4.1 steps 4 and 8). 16-bit addressing is
// not exercised by this corpus's instructions and is left unimplemented
// here.
func resolveAddressing(c *cursor, modrm RawModRM, rex RawREX, vexB, vexX bool) (decodedAddress, RawSIB, RawDisp, error) {
	var addr decodedAddress
	var sib RawSIB
	var disp RawDisp

	extB := rex.B || vexB
	extX := rex.X || vexX

	if modrm.Mod == 3 {
		addr.isRegister = true
		return addr, sib, disp, nil
	}

	if modrm.Rm == 4 {
		b, ok := c.next()
		if !ok {
			return addr, sib, disp, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated SIB")
		}
		sib = RawSIB{Present: true, Scale: b >> 6, Index: (b >> 3) & 0x7, Base: b & 0x7}
		addr.scale = 1 << sib.Scale

		if sib.Index == 4 && !extX {
			addr.index = register.RegNone
		} else {
			idx, _ := register.Encode(register.ClassGPR64, (boolBit(extX)<<3)|sib.Index)
			addr.index = idx
		}

		if sib.Base == 5 && modrm.Mod == 0 {
			d, derr := readDisp(c, 4)
			if derr != nil {
				return addr, sib, disp, derr
			}
			disp = d
			addr.base = register.RegNone
			addr.hasDisp = true
			addr.disp = d.Value
			addr.dispSize = d.Size
		} else {
			base, _ := register.Encode(register.ClassGPR64, (boolBit(extB)<<3)|sib.Base)
			addr.base = base
		}
	} else if modrm.Mod == 0 && modrm.Rm == 5 {
		d, derr := readDisp(c, 4)
		if derr != nil {
			return addr, sib, disp, derr
		}
		disp = d
		addr.isRIPRel = true
		addr.base = register.RIP
		addr.hasDisp = true
		addr.disp = d.Value
		addr.dispSize = d.Size
	} else {
		base, _ := register.Encode(register.ClassGPR64, (boolBit(extB)<<3)|modrm.Rm)
		addr.base = base
	}

	if !addr.hasDisp {
		switch modrm.Mod {
		case 1:
			d, derr := readDisp(c, 1)
			if derr != nil {
				return addr, sib, disp, derr
			}
			disp = d
			addr.hasDisp = true
			addr.disp = d.Value
			addr.dispSize = d.Size
		case 2:
			d, derr := readDisp(c, 4)
			if derr != nil {
				return addr, sib, disp, derr
			}
			disp = d
			addr.hasDisp = true
			addr.disp = d.Value
			addr.dispSize = d.Size
		}
	}

	return addr, sib, disp, nil
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func readDisp(c *cursor, size int) (RawDisp, error) {
	offset := c.pos
	var v int64
	for i := 0; i < size; i++ {
		b, ok := c.next()
		if !ok {
			return RawDisp{}, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "truncated displacement")
		}
		v |= int64(b) << (8 * i)
	}
	v = signExtend(v, size)
	return RawDisp{Present: true, Value: v, Offset: offset, Size: size}, nil
}

func signExtend(v int64, size int) int64 {
	bits := uint(size * 8)
	mask := int64(1) << (bits - 1)
	return (v ^ mask) - mask
}

// defaultSegmentFor returns the segment a memory operand uses absent an
// explicit override: SS for an RSP/RBP-family base, DS otherwise (spec
// section 4.1 step 8).
func defaultSegmentFor(base register.Register) register.Register {
	if base == register.RegNone {
		return register.DS
	}
	switch base.ID() & 0x7 {
	case 4, 5: // RSP/RBP family (also R12/R13 via REX.B extension)
		if base.Class() == register.ClassGPR64 {
			return register.SS
		}
	}
	return register.DS
}
