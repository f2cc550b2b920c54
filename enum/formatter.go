package enum

// Style selects the output dialect a Formatter renders (spec section 3.6).
// StyleATT is a recognized value but is not implemented by this module;
// NewFormatter rejects it with InvalidParameter instead of silently falling
// back to Intel syntax.
type Style int

const (
	StyleIntel Style = iota
	StyleIntelMasm
	StyleATT
)

// AddrFormat controls how format_address renders absolute vs relative
// addresses (spec section 6.2, property ADDR_FORMAT).
type AddrFormat int

const (
	AddrFormatAbsolute AddrFormat = iota
	AddrFormatRelativeSigned
	AddrFormatRelativeUnsigned
)

// NumberFormat controls the signedness a displacement or immediate is
// rendered with (spec section 6.2, properties DISP_FORMAT/IMM_FORMAT).
type NumberFormat int

const (
	NumberFormatHexUnsigned NumberFormat = iota
	NumberFormatHexSigned
	NumberFormatHexAuto
)

// TokenType tags one fragment of tokenized formatter output (spec section
// 3.6, "Tokenization").
type TokenType int

const (
	TokenInvalid TokenType = iota
	TokenWhitespace
	TokenDelimiter
	TokenParenOpen
	TokenParenClose
	TokenPrefix
	TokenMnemonic
	TokenRegister
	TokenAddressAbs
	TokenAddressRel
	TokenDisplacement
	TokenImmediate
	TokenTypecast
	TokenDecorator
	TokenSegment
)

func (t TokenType) String() string {
	switch t {
	case TokenWhitespace:
		return "whitespace"
	case TokenDelimiter:
		return "delimiter"
	case TokenParenOpen:
		return "parenthesis_open"
	case TokenParenClose:
		return "parenthesis_close"
	case TokenPrefix:
		return "prefix"
	case TokenMnemonic:
		return "mnemonic"
	case TokenRegister:
		return "register"
	case TokenAddressAbs:
		return "address_abs"
	case TokenAddressRel:
		return "address_rel"
	case TokenDisplacement:
		return "displacement"
	case TokenImmediate:
		return "immediate"
	case TokenTypecast:
		return "typecast"
	case TokenDecorator:
		return "decorator"
	case TokenSegment:
		return "segment"
	default:
		return "invalid"
	}
}
