package enum

// VectorLength is the SIMD width selected by VEX.L / EVEX.L'L / MVEX (spec
// section 3.2).
type VectorLength int

const (
	VectorLength128 VectorLength = 128
	VectorLength256 VectorLength = 256
	VectorLength512 VectorLength = 512
)

// TupleType is the EVEX memory-operand scaling category (spec section 3.2,
// glossary "Tuple type").
type TupleType int

const (
	TupleNone TupleType = iota
	TupleFV             // Full Vector
	TupleHV             // Half Vector
	TupleFVM            // Full Vector Memory
	TupleT1S            // Tuple1 Scalar
	TupleT1F            // Tuple1 Fixed
	TupleT1_4X          // Tuple1 4x (for 4FMAPS etc.)
	TupleGSCAT          // Gather/Scatter
	TupleT2             // Tuple2
	TupleT4             // Tuple4
	TupleT8             // Tuple8
	TupleHVM            // Half Vector Memory
	TupleQVM            // Quarter Vector Memory
	TupleOVM            // Octal Vector Memory
	TupleM128           // fixed 128-bit memory
	TupleDUP            // duplicated (VMOVDDUP style)
)

// CompressedDisp8Scale returns the factor the EVEX 8-bit displacement is
// multiplied by to reach the true displacement (spec section 3.2, glossary
// "Compressed disp8"), given the tuple type, element size in bytes, and
// whether this operand instance is broadcasting.
func (t TupleType) CompressedDisp8Scale(elementSize int, vectorLen VectorLength, broadcast bool) int {
	vecBytes := int(vectorLen) / 8
	switch t {
	case TupleFV:
		if broadcast {
			return elementSize
		}
		return vecBytes
	case TupleHV:
		if broadcast {
			return elementSize
		}
		return vecBytes / 2
	case TupleFVM:
		return vecBytes
	case TupleT1S:
		return elementSize
	case TupleT1F:
		return elementSize
	case TupleT1_4X:
		return elementSize * 4
	case TupleT2:
		return elementSize * 2
	case TupleT4:
		return elementSize * 4
	case TupleT8:
		return elementSize * 8
	case TupleHVM:
		return vecBytes / 2
	case TupleQVM:
		return vecBytes / 4
	case TupleOVM:
		return vecBytes / 8
	case TupleM128:
		return 16
	case TupleDUP:
		if vectorLen == VectorLength128 {
			return 8
		}
		return vecBytes
	default:
		return 1
	}
}

// ElementType is the scalar interpretation of a vector lane (spec section
// 3.3, "element type").
type ElementType int

const (
	ElementInvalid ElementType = iota
	ElementInt8
	ElementInt16
	ElementInt32
	ElementInt64
	ElementUint8
	ElementUint16
	ElementUint32
	ElementUint64
	ElementFloat16
	ElementFloat32
	ElementFloat64
	ElementStruct // opaque struct element, e.g. GPR/pointer operands
)

// SizeBytes returns the storage size of one element, 0 for ElementStruct.
func (e ElementType) SizeBytes() int {
	switch e {
	case ElementInt8, ElementUint8:
		return 1
	case ElementInt16, ElementUint16, ElementFloat16:
		return 2
	case ElementInt32, ElementUint32, ElementFloat32:
		return 4
	case ElementInt64, ElementUint64, ElementFloat64:
		return 8
	default:
		return 0
	}
}

// MaskMode is the EVEX/MVEX merge-vs-zero masking mode (spec section 3.2).
type MaskMode int

const (
	MaskModeNone MaskMode = iota
	MaskModeMerge
	MaskModeZero
)

// MaskPolicy is the per-definition requirement on whether a mask register
// must, may, or may never be non-K0 (spec section 3.4).
type MaskPolicy int

const (
	MaskPolicyAllowed MaskPolicy = iota
	MaskPolicyRequired
	MaskPolicyForbidden
)

// BroadcastMode is the EVEX broadcast factor: "1tN" broadcasts one element
// to N lanes, "4tN" broadcasts a 4-element group to N lanes (spec section
// 3.2).
type BroadcastMode int

const (
	BroadcastNone BroadcastMode = iota
	Broadcast1To2
	Broadcast1To4
	Broadcast1To8
	Broadcast1To16
	Broadcast4To8
	Broadcast4To16
)

func (b BroadcastMode) String() string {
	switch b {
	case BroadcastNone:
		return ""
	case Broadcast1To2:
		return "1to2"
	case Broadcast1To4:
		return "1to4"
	case Broadcast1To8:
		return "1to8"
	case Broadcast1To16:
		return "1to16"
	case Broadcast4To8:
		return "4to8"
	case Broadcast4To16:
		return "4to16"
	default:
		return "unknown-broadcast"
	}
}

// SourceGroupSize and DestinationCount split a broadcast mode "XtoN" into
// its two factors: SourceGroupSize is X, the number of memory elements in
// the broadcast group (1 or 4), and DestinationCount is N, the number of
// destination elements the broadcast fills.
func (b BroadcastMode) SourceGroupSize() int {
	switch b {
	case Broadcast1To2, Broadcast1To4, Broadcast1To8, Broadcast1To16:
		return 1
	case Broadcast4To8, Broadcast4To16:
		return 4
	default:
		return 0
	}
}

func (b BroadcastMode) DestinationCount() int {
	switch b {
	case Broadcast1To2:
		return 2
	case Broadcast1To4:
		return 4
	case Broadcast1To8, Broadcast4To8:
		return 8
	case Broadcast1To16, Broadcast4To16:
		return 16
	default:
		return 0
	}
}

// RoundingMode is the EVEX static-rounding control (spec section 3.2).
type RoundingMode int

const (
	RoundingNone RoundingMode = iota
	RoundingRN                // round to nearest
	RoundingRD                // round down
	RoundingRU                // round up
	RoundingRZ                // round toward zero
	RoundingRNSAE
	RoundingRDSAE
	RoundingRUSAE
	RoundingRZSAE
	RoundingSAEOnly
)

func (r RoundingMode) String() string {
	switch r {
	case RoundingRN:
		return "rn"
	case RoundingRD:
		return "rd"
	case RoundingRU:
		return "ru"
	case RoundingRZ:
		return "rz"
	case RoundingRNSAE:
		return "rn-sae"
	case RoundingRDSAE:
		return "rd-sae"
	case RoundingRUSAE:
		return "ru-sae"
	case RoundingRZSAE:
		return "rz-sae"
	case RoundingSAEOnly:
		return "sae"
	default:
		return ""
	}
}

// HasSAE reports whether this rounding mode implies Suppress-All-Exceptions,
// matching spec section 3.2's "has_SAE implies rounding (or pure SAE)".
func (r RoundingMode) HasSAE() bool {
	return r != RoundingNone
}

// SwizzleMode is the MVEX SSS-field input swizzle (spec section 3.2).
type SwizzleMode int

const (
	SwizzleNone SwizzleMode = iota
	SwizzleDCBA
	SwizzleCDAB
	SwizzleBADC
	SwizzleDACB
	SwizzleAAAA
	SwizzleBBBB
	SwizzleCCCC
	SwizzleDDDD
)

func (s SwizzleMode) String() string {
	switch s {
	case SwizzleDCBA:
		return "dcba"
	case SwizzleCDAB:
		return "cdab"
	case SwizzleBADC:
		return "badc"
	case SwizzleDACB:
		return "dacb"
	case SwizzleAAAA:
		return "aaaa"
	case SwizzleBBBB:
		return "bbbb"
	case SwizzleCCCC:
		return "cccc"
	case SwizzleDDDD:
		return "dddd"
	default:
		return ""
	}
}

// ConversionMode is the MVEX SSS-field numeric conversion (spec section
// 3.2).
type ConversionMode int

const (
	ConversionNone ConversionMode = iota
	ConversionFloat16
	ConversionSint8
	ConversionUint8
	ConversionSint16
	ConversionUint16
)

func (c ConversionMode) String() string {
	switch c {
	case ConversionFloat16:
		return "float16"
	case ConversionSint8:
		return "sint8"
	case ConversionUint8:
		return "uint8"
	case ConversionSint16:
		return "sint16"
	case ConversionUint16:
		return "uint16"
	default:
		return ""
	}
}

// MVEXFunctionality is the MVEX.E-bit interpretation family: whether EVEX.b
// equivalent selects swizzle/conversion, static rounding, or SAE, or whether
// the instruction is memory-eviction capable (spec section 3.2/4.2).
type MVEXFunctionality int

const (
	MVEXFuncIgnored MVEXFunctionality = iota
	MVEXFuncSwizzleConversion
	MVEXFuncRounding
	MVEXFuncSAE
	MVEXFuncEvictionHint
)
