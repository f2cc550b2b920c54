package decoder

import "github.com/relsig/x86isa/enum"

// Decoder is a per-call configuration object: machine mode, stack width,
// and compatibility-mode flags (spec section 4.1). It carries no mutable
// decode state between calls — DecodeBuffer is a pure function of (Decoder,
// bytes, runtime_ip).
type Decoder struct {
	mode       enum.MachineMode
	stackWidth enum.StackWidth
	modeFlags  uint32 // bit i set => DecoderModeFlag(i) enabled
}

// NewDecoder implements decoder_init(mode, stack_width) -> Decoder (spec
// section 4.1/6.1). Rejects invalid mode/width combinations.
func NewDecoder(mode enum.MachineMode, stackWidth enum.StackWidth) (*Decoder, error) {
	if !mode.ValidStackWidth(stackWidth) {
		return nil, enum.NewError(enum.CodeInvalidParameter, "stack width incompatible with machine mode")
	}
	d := &Decoder{mode: mode, stackWidth: stackWidth}
	for f := enum.DecoderModeFlag(0); f.Valid(); f++ {
		if f.DefaultEnabled() {
			d.modeFlags |= 1 << uint(f)
		}
	}
	return d, nil
}

// EnableMode implements decoder_enable_mode(decoder, flag, bool) (spec
// section 4.1/6.1).
func (d *Decoder) EnableMode(flag enum.DecoderModeFlag, enabled bool) error {
	if !flag.Valid() {
		return enum.NewError(enum.CodeInvalidParameter, "unknown decoder mode flag")
	}
	if enabled {
		d.modeFlags |= 1 << uint(flag)
	} else {
		d.modeFlags &^= 1 << uint(flag)
	}
	return nil
}

// ModeEnabled reports whether a compatibility flag is currently set.
func (d *Decoder) ModeEnabled(flag enum.DecoderModeFlag) bool {
	if !flag.Valid() {
		return false
	}
	return d.modeFlags&(1<<uint(flag)) != 0
}

// Mode returns the decoder's configured machine mode.
func (d *Decoder) Mode() enum.MachineMode { return d.mode }

// StackWidth returns the decoder's configured stack width.
func (d *Decoder) StackWidth() enum.StackWidth { return d.stackWidth }
