// Package register implements the static register model shared by the
// decoder, encoder, and formatter: the Register enumeration, its class/id/
// width breakdown, and name lookup (spec section 4.3). It generalizes the
// teacher's inline register model (a register array plus named constants
// and accessors in vm/cpu.go) into a register table with a mode-dependent
// width model (largest-enclosing register varies by MachineMode).
package register

import "github.com/relsig/x86isa/enum"

// Class groups registers that share an encoding space (spec section 4.3).
type Class int

const (
	ClassGPR8 Class = iota
	ClassGPR16
	ClassGPR32
	ClassGPR64
	ClassX87
	ClassMMX
	ClassXMM
	ClassYMM
	ClassZMM
	ClassFlags
	ClassIP
	ClassSegment
	ClassTest
	ClassControl
	ClassDebug
	ClassMask
	ClassBound
	ClassNone
)

func (c Class) String() string {
	switch c {
	case ClassGPR8:
		return "gpr8"
	case ClassGPR16:
		return "gpr16"
	case ClassGPR32:
		return "gpr32"
	case ClassGPR64:
		return "gpr64"
	case ClassX87:
		return "x87"
	case ClassMMX:
		return "mmx"
	case ClassXMM:
		return "xmm"
	case ClassYMM:
		return "ymm"
	case ClassZMM:
		return "zmm"
	case ClassFlags:
		return "flags"
	case ClassIP:
		return "ip"
	case ClassSegment:
		return "segment"
	case ClassTest:
		return "test"
	case ClassControl:
		return "control"
	case ClassDebug:
		return "debug"
	case ClassMask:
		return "mask"
	case ClassBound:
		return "bound"
	default:
		return "none"
	}
}

// IsVector reports whether the class is one of XMM/YMM/ZMM, the gate VSIB
// index operands must satisfy (spec section 3.3 invariant).
func (c Class) IsVector() bool {
	return c == ClassXMM || c == ClassYMM || c == ClassZMM
}

// Register is an opaque handle into the static register table; zero value
// is RegNone. Grounded on the teacher's `Register{Name, Type, Encoding}`
// struct shape, widened with a packed id so the same value type serves
// every register class instead of one struct literal per class.
type Register uint16

const (
	RegNone Register = iota
)

type entry struct {
	name       string
	class      Class
	id         byte // encoding value within the class (0..31)
	width64    int  // width in bits under 64-bit mode / long mode generally
	widthOther int  // width in bits outside 64-bit mode, when it differs
}

// table is indexed directly by Register value; built once at package init
// via the generator below and never mutated afterward (spec section 5:
// "all instruction tables, register tables... are read-only").
var table []entry
var byName map[string]Register

type classID struct {
	class Class
	id    byte
}

var byClassID map[classID]Register

func register(name string, class Class, id byte, width int) Register {
	r := Register(len(table))
	table = append(table, entry{name: name, class: class, id: id, width64: width, widthOther: width})
	byName[name] = r
	byClassID[classID{class, id}] = r
	return r
}

func registerModeDependent(name string, class Class, id byte, width64, widthOther int) Register {
	r := Register(len(table))
	table = append(table, entry{name: name, class: class, id: id, width64: width64, widthOther: widthOther})
	byName[name] = r
	byClassID[classID{class, id}] = r
	return r
}

func init() {
	table = make([]entry, 1, 256) // index 0 reserved for RegNone
	byName = make(map[string]Register, 256)
	byClassID = make(map[classID]Register, 256)
	buildGPR()
	buildVector()
	buildSegmentControlDebug()
	buildSpecial()
}

// Class returns r's register class.
func (r Register) Class() Class {
	if int(r) <= 0 || int(r) >= len(table) {
		return ClassNone
	}
	return table[r].class
}

// ID returns r's encoding value within its class (0..31).
func (r Register) ID() byte {
	if int(r) <= 0 || int(r) >= len(table) {
		return 0
	}
	return table[r].id
}

// Name returns r's lower-case assembly name, or "" for RegNone.
func (r Register) Name() string {
	if int(r) <= 0 || int(r) >= len(table) {
		return ""
	}
	return table[r].name
}

func (r Register) String() string {
	if name := r.Name(); name != "" {
		return name
	}
	return "none"
}

// Width returns r's width in bits under the given machine mode (spec
// section 4.3: "width(machine_mode, register)").
func (r Register) Width(mode enum.MachineMode) int {
	if int(r) <= 0 || int(r) >= len(table) {
		return 0
	}
	e := table[r]
	if mode.Is64() {
		return e.width64
	}
	return e.widthOther
}

// ByName looks up a register by its lower-case assembly name (spec section
// 4.3: "Name lookup returns a string view").
func ByName(name string) (Register, bool) {
	r, ok := byName[name]
	return r, ok
}

// Encode builds a Register handle from a class and an encoding id, the
// inverse of (Class, ID) — used by the decoder to materialize register
// operands from harvested bit-fields (spec section 4.3: "encode(class, id)
// -> register").
func Encode(class Class, id byte) (Register, bool) {
	r, ok := byClassID[classID{class, id}]
	return r, ok
}
