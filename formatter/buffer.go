package formatter

import (
	"strings"

	"github.com/relsig/x86isa/enum"
)

// Token is one labeled fragment of tokenized formatter output (spec section
// 3.6, "Tokenization"): a kind tag plus the exact text that kind rendered.
type Token struct {
	Type  enum.TokenType
	Value string
}

// Buffer is the formatter's output sink: it always accumulates the plain
// string, and additionally records a parallel token stream when the caller
// asked for tokenized output (spec section 3.6, "FormatterBuffer is either
// string mode ... or tokenized mode"). Unlike the source library's buffer,
// which is either-or, this one always keeps the string so FormatInstruction
// and TokenizeInstruction can share one code path and still satisfy
// testable property 8 (token concatenation equals the string).
type Buffer struct {
	tokenized bool
	sb        strings.Builder
	tokens    []Token
}

// newBuffer creates an empty Buffer. tokenized selects whether Append also
// records a Token for each emission.
func newBuffer(tokenized bool) *Buffer {
	return &Buffer{tokenized: tokenized}
}

// Append writes value to the buffer, tagging it as typ when in tokenized
// mode.
func (b *Buffer) Append(typ enum.TokenType, value string) {
	b.sb.WriteString(value)
	if b.tokenized {
		b.tokens = append(b.tokens, Token{Type: typ, Value: value})
	}
}

// String returns everything written to the buffer so far.
func (b *Buffer) String() string {
	return b.sb.String()
}

// Tokens returns the recorded token stream; nil in string-only mode.
func (b *Buffer) Tokens() []Token {
	return b.tokens
}

// snapshot marks a point a hook can restore to via restore, implementing
// the "any hook returning SkipToken restores the buffer to the state
// snapshotted before the hook" rule (spec section 4.5).
type snapshot struct {
	strLen    int
	tokenLen  int
}

func (b *Buffer) snapshot() snapshot {
	return snapshot{strLen: b.sb.Len(), tokenLen: len(b.tokens)}
}

func (b *Buffer) restore(s snapshot) {
	kept := b.sb.String()[:s.strLen]
	b.sb.Reset()
	b.sb.WriteString(kept)
	b.tokens = b.tokens[:s.tokenLen]
}

// runHook snapshots the buffer, runs fn, and on a CodeSkipToken error
// restores the buffer and swallows the error; any other error propagates.
func runHook(b *Buffer, fn func() error) error {
	snap := b.snapshot()
	err := fn()
	if err == nil {
		return nil
	}
	if derr, ok := err.(*enum.Error); ok && derr.Code == enum.CodeSkipToken {
		b.restore(snap)
		return nil
	}
	return err
}
