package ir

type FuncID int32
type BlockID int32
type GlobalID int32
type ValueID int32

const (
	NoFuncID   FuncID   = -1
	NoBlockID  BlockID  = -1
	NoGlobalID GlobalID = -1
	NoValueID  ValueID  = -1
)

// Type is the value type of a global, parameter or instruction result.
// The pass only needs a handful of scalar shapes, so types are a closed
// enum rather than an interned graph.
type Type uint8

const (
	TypeVoid Type = iota
	TypeInt8
	TypeInt32
	TypeInt64
	// TypePtr is an opaque pointer. Pointee shapes are not tracked.
	TypePtr
)

// String returns the textual form used by the dumper.
func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeInt8:
		return "i8"
	case TypeInt32:
		return "i32"
	case TypeInt64:
		return "i64"
	case TypePtr:
		return "ptr"
	default:
		return "unknown"
	}
}

// Linkage describes how a symbol participates in linking.
type Linkage uint8

const (
	// LinkExternal is the default externally visible linkage.
	LinkExternal Linkage = iota
	// LinkInternal symbols are local to the translation unit.
	LinkInternal
	// LinkExternalWeak symbols may be entirely absent after linking
	// without causing an undefined-symbol error.
	LinkExternalWeak
	// LinkAvailableExternally bodies exist for analysis only; the real
	// definition lives in another translation unit.
	LinkAvailableExternally
)

func (l Linkage) String() string {
	switch l {
	case LinkExternal:
		return "external"
	case LinkInternal:
		return "internal"
	case LinkExternalWeak:
		return "extern_weak"
	case LinkAvailableExternally:
		return "available_externally"
	default:
		return "unknown"
	}
}

// Visibility describes symbol visibility in the linked image.
type Visibility uint8

const (
	VisibilityDefault Visibility = iota
	VisibilityHidden
)

func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "hidden"
	default:
		return "default"
	}
}

// BinFormat is the object file format the module targets.
type BinFormat uint8

const (
	BinFormatUnknown BinFormat = iota
	BinFormatELF
	BinFormatMachO
	BinFormatCOFF
)

func (f BinFormat) String() string {
	switch f {
	case BinFormatELF:
		return "elf"
	case BinFormatMachO:
		return "macho"
	case BinFormatCOFF:
		return "coff"
	default:
		return "unknown"
	}
}

// CodeModel is the addressing model the module was compiled for.
type CodeModel uint8

const (
	// CodeModelDefault means no explicit code model was recorded.
	CodeModelDefault CodeModel = iota
	CodeModelTiny
	CodeModelSmall
	CodeModelKernel
	CodeModelMedium
	CodeModelLarge
)

func (cm CodeModel) String() string {
	switch cm {
	case CodeModelTiny:
		return "tiny"
	case CodeModelSmall:
		return "small"
	case CodeModelKernel:
		return "kernel"
	case CodeModelMedium:
		return "medium"
	case CodeModelLarge:
		return "large"
	default:
		return "default"
	}
}

// AtomicOrdering is the memory ordering of an atomic operation.
type AtomicOrdering uint8

const (
	// OrderingNotAtomic marks a plain, non-atomic memory access.
	OrderingNotAtomic AtomicOrdering = iota
	OrderingUnordered
	OrderingMonotonic
	OrderingAcquire
	OrderingRelease
	OrderingAcqRel
	OrderingSeqCst
)

func (o AtomicOrdering) String() string {
	switch o {
	case OrderingNotAtomic:
		return "notatomic"
	case OrderingUnordered:
		return "unordered"
	case OrderingMonotonic:
		return "monotonic"
	case OrderingAcquire:
		return "acquire"
	case OrderingRelease:
		return "release"
	case OrderingAcqRel:
		return "acq_rel"
	case OrderingSeqCst:
		return "seq_cst"
	default:
		return "unknown"
	}
}

// SyncScope is the set of threads an atomic operation synchronizes with.
type SyncScope uint8

const (
	// ScopeSystem synchronizes with all threads in the system.
	ScopeSystem SyncScope = iota
	// ScopeSingleThread synchronizes only within the current thread
	// (signal handlers, mostly).
	ScopeSingleThread
)

func (s SyncScope) String() string {
	switch s {
	case ScopeSingleThread:
		return "singlethread"
	default:
		return "system"
	}
}

// FuncAttrs is a bitfield of function attributes the pass inspects.
type FuncAttrs uint8

const (
	// AttrNoReturn marks functions that never return to their caller.
	AttrNoReturn FuncAttrs = 1 << iota
	// AttrIntrinsic marks compiler-known functions with fixed semantics.
	AttrIntrinsic
	// AttrNoSanitize disables sanitizer instrumentation for a function.
	AttrNoSanitize
)
