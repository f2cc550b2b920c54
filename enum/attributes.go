package enum

// Attribute is a single bit of the decoded-instruction attribute bit-set
// (spec section 3.2). Held as a bitmask type rather than individual bool
// fields so DecodedInstruction stays small and attribute tests are single
// AND operations, matching the source library's packed-flags design.
type Attribute uint64

const (
	AttrHasModRM Attribute = 1 << iota
	AttrHasSIB
	AttrHasREX
	AttrHasXOP
	AttrHasVEX
	AttrHasEVEX
	AttrHasMVEX
	AttrIsRelative
	AttrIsPrivileged
	AttrHasLock
	AttrHasRep
	AttrHasRepe
	AttrHasRepne
	AttrHasXacquire
	AttrHasXrelease
	AttrHasBranchTaken
	AttrHasBranchNotTaken
	AttrHasSegmentCS
	AttrHasSegmentSS
	AttrHasSegmentDS
	AttrHasSegmentES
	AttrHasSegmentFS
	AttrHasSegmentGS
	AttrHasOperandSize
	AttrHasAddressSize
	AttrIsFarBranch

	// AcceptsX flags record which optional prefixes the matched definition
	// *tolerates*, independent of whether the instruction stream actually
	// carried them (spec section 3.2/3.4).
	AttrAcceptsLock
	AttrAcceptsRep
	AttrAcceptsRepe
	AttrAcceptsRepne
	AttrAcceptsBound
	AttrAcceptsXacquire
	AttrAcceptsXrelease
	AttrAcceptsHLEWithoutLock
	AttrAcceptsBranchHints
	AttrAcceptsSegment
)

// Has reports whether every bit in mask is set.
func (a Attribute) Has(mask Attribute) bool {
	return a&mask == mask
}

// Set returns a copy of a with mask's bits turned on.
func (a Attribute) Set(mask Attribute) Attribute {
	return a | mask
}

// segmentAttributeFor returns the has_segment_X attribute bit for a segment
// register encoding value (0=ES..5=GS, matching register.SegmentEncoding),
// used by the decoder when an explicit segment-override prefix is present.
func segmentAttributeFor(segEncoding byte) Attribute {
	switch segEncoding {
	case 0:
		return AttrHasSegmentES
	case 1:
		return AttrHasSegmentCS
	case 2:
		return AttrHasSegmentSS
	case 3:
		return AttrHasSegmentDS
	case 4:
		return AttrHasSegmentFS
	case 5:
		return AttrHasSegmentGS
	default:
		return 0
	}
}

// SegmentAttributeFor is the exported form of segmentAttributeFor, used by
// the decoder package to translate a harvested segment-override prefix into
// the corresponding attribute bit.
func SegmentAttributeFor(segEncoding byte) Attribute {
	return segmentAttributeFor(segEncoding)
}
