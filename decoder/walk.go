package decoder

import (
	"github.com/relsig/x86isa/enum"
	"github.com/relsig/x86isa/tables"
)

// preharvestedAddressing carries ModRM/SIB/displacement/address state the
// opcode walk had to consume itself, ahead of the generic post-walk harvest
// in DecodeBuffer — currently only the 3DNow escape's reversed byte order
// needs this.
type preharvestedAddressing struct {
	modrm RawModRM
	sib   RawSIB
	disp  RawDisp
	addr  decodedAddress
}

// walkToDefinition drives the opcode-table-tree walk (spec section 4.1 steps
// 3-7): pick the root the prefix dispatch selected, consume opcode bytes and
// follow SwitchTable pivots, resolve any mandatory-prefix selector, and land
// on a Definition leaf. It returns the leaf's NodeRef, the final opcode byte
// (the one that indexed into the table holding the definition, or - for the
// 3DNow special case - the trailing suffix byte), and any addressing state
// the 3DNow special case had to harvest early.
func walkToDefinition(c *cursor, d *Decoder, ctx encodingContext, legacy legacyPrefixState) (tables.NodeRef, byte, *preharvestedAddressing, error) {
	ref, ok := tables.Global.Root(int(rootIDFor(ctx.encoding)))
	if !ok {
		return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos, "no table root for encoding class")
	}

	mp := mandatoryPrefixFor(ctx, legacy)

	threeDNowRoot, hasThreeDNowRoot := tables.Global.Root(int(enum.Root3DNow))

	for {
		nodeType, _ := tables.Global.Header(ref)
		switch nodeType {
		case tables.NodeOpcodeTable:
			opByte, ok := c.next()
			if !ok {
				return 0, 0, nil, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "no more data for opcode byte")
			}
			child := tables.Global.Child(ref, int(opByte))
			if child == tables.NodeRefInvalid {
				return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos-1, "undefined opcode")
			}
			ref = child

		case tables.NodeSwitchTable:
			target := tables.Global.SwitchTarget(ref)
			nref, ok := tables.Global.Root(target)
			if !ok {
				return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos, "switch table target has no root")
			}
			ref = nref

			// The 3DNow escape (0F 0F) keys its final table by the byte
			// that trails ModRM/SIB/displacement rather than a byte that
			// immediately follows the opcode (spec section 4.1, opcode map
			// 0F0F special case): once the walk has pivoted into the
			// 3DNow root, harvest the full addressing bytes now, in their
			// real wire order, before reading the trailing suffix byte.
			if hasThreeDNowRoot && ref == threeDNowRoot {
				modrm, err := harvestModRM(c)
				if err != nil {
					return 0, 0, nil, err
				}
				addr, sib, disp, err := resolveAddressing(c, modrm, ctx.raw.REX, false, false)
				if err != nil {
					return 0, 0, nil, err
				}
				pre := &preharvestedAddressing{modrm: modrm, sib: sib, disp: disp, addr: addr}
				return walkThreeDNowSuffix(c, ref, pre)
			}

		case tables.NodeSelectorMandatoryPrefix:
			child := tables.Global.Child(ref, int(mp))
			if child == tables.NodeRefInvalid {
				return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos, "no instruction for this mandatory prefix")
			}
			ref = child

		case tables.NodeDefinition:
			return ref, lastConsumedByte(c), nil, nil

		default:
			return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos, "unexpected node type during opcode walk")
		}
	}
}

// walkThreeDNowSuffix reads the trailing 3DNow opcode-suffix byte and
// indexes the already-pivoted-to root3DNow table with it.
func walkThreeDNowSuffix(c *cursor, ref tables.NodeRef, pre *preharvestedAddressing) (tables.NodeRef, byte, *preharvestedAddressing, error) {
	suffix, ok := c.next()
	if !ok {
		return 0, 0, nil, enum.NewErrorAt(enum.CodeNoMoreData, c.pos, "no more data for 3DNow suffix byte")
	}
	child := tables.Global.Child(ref, int(suffix))
	if child == tables.NodeRefInvalid {
		return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos-1, "undefined 3DNow suffix")
	}
	if t, _ := tables.Global.Header(child); t != tables.NodeDefinition {
		return 0, 0, nil, enum.NewErrorAt(enum.CodeDecodingError, c.pos-1, "malformed 3DNow table entry")
	}
	return child, suffix, pre, nil
}

func lastConsumedByte(c *cursor) byte {
	if c.pos == 0 {
		return 0
	}
	return c.buf[c.pos-1]
}

func rootIDFor(enc enum.EncodingClass) enum.TableRootID {
	switch enc {
	case enum.EncodingVEX:
		return enum.RootVEX
	case enum.EncodingXOP:
		return enum.RootXOP
	case enum.EncodingEVEX:
		return enum.RootEVEX
	case enum.EncodingMVEX:
		return enum.RootMVEX
	default:
		return enum.RootPrimary
	}
}

// mandatoryPrefixFor resolves the "none/66/F2/F3" selector a
// NodeSelectorMandatoryPrefix node branches on (spec section 4.1 step 6).
// For VEX/XOP/EVEX/MVEX encodings the prefix is explicit in the vector
// prefix's PP field; for legacy/REX encodings it is derived from the
// absorbed 0x66/0xF2/0xF3 legacy prefixes, with 0xF3/0xF2 taking
// precedence over 0x66 since a REP/REPNE byte can't simultaneously serve
// as an operand-size override for an SSE mandatory-prefix opcode.
func mandatoryPrefixFor(ctx encodingContext, legacy legacyPrefixState) enum.MandatoryPrefix {
	switch ctx.encoding {
	case enum.EncodingVEX:
		return ctx.raw.VEX.PP
	case enum.EncodingXOP:
		return ctx.raw.XOP.PP
	case enum.EncodingEVEX:
		return ctx.raw.EVEX.PP
	case enum.EncodingMVEX:
		return ctx.raw.MVEX.PP
	default:
		switch {
		case legacy.hasF3:
			return enum.MandatoryF3
		case legacy.hasF2:
			return enum.MandatoryF2
		case legacy.operandSize66:
			return enum.Mandatory66
		default:
			return enum.MandatoryNone
		}
	}
}
