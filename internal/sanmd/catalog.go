// Package sanmd implements the binary-metadata instrumentation pass:
// it decides, per function and per instruction, whether to attach
// metadata records describing runtime-relevant properties (coverage,
// atomic memory operations, use-after-return exposure) and emits the
// constructor machinery a runtime uses to discover those records.
package sanmd

// Feature bits stored in a function's covered-record feature mask.
const (
	// FeatureNone is the empty mask.
	FeatureNone uint32 = 0
	// FeatureUAR marks functions whose stack frames need
	// use-after-return checking.
	FeatureUAR uint32 = 1 << 0
	// FeatureAtomics marks functions containing atomic operations
	// visible to other threads.
	FeatureAtomics uint32 = 1 << 1
)

const (
	// versionBase occupies the lower 16 bits of the record format version.
	versionBase uint32 = 1
	// versionPtrSizeRel flags that in-record offsets are pointer-sized.
	versionPtrSizeRel uint32 = 1 << 16
	// ctorDtorPriority orders metadata registration relative to other
	// static initializers.
	ctorDtorPriority int32 = 2
)

// KindID identifies one supported metadata kind.
type KindID uint8

const (
	// KindCovered is per-function metadata marking that a function was
	// instrumented, with its feature mask.
	KindCovered KindID = iota
	// KindAtomics is per-instruction metadata marking atomic memory
	// operations with a scope broader than a single thread.
	KindAtomics

	numKinds
)

// KindInfo pairs the naming of a metadata kind's runtime callbacks and
// section with the feature bit it contributes to function masks.
type KindInfo struct {
	// FuncPrefix names the runtime registration callbacks: the pass
	// emits calls to FuncPrefix+"_add" and FuncPrefix+"_del".
	FuncPrefix string
	// SectionSuffix names the section receiving this kind's records.
	SectionSuffix string
	// Feature is this kind's bit in function feature masks; zero for
	// kinds that are a presence flag only.
	Feature uint32
}

var kindTable = [numKinds]KindInfo{
	KindCovered: {
		FuncPrefix:    "__sanitizer_metadata_covered",
		SectionSuffix: "sanmd_covered",
		Feature:       FeatureNone,
	},
	KindAtomics: {
		FuncPrefix:    "__sanitizer_metadata_atomics",
		SectionSuffix: "sanmd_atomics",
		Feature:       FeatureAtomics,
	},
}

// Info returns the kind's immutable descriptor.
func (k KindID) Info() *KindInfo {
	return &kindTable[k]
}

// String returns the kind's name.
func (k KindID) String() string {
	switch k {
	case KindCovered:
		return "covered"
	case KindAtomics:
		return "atomics"
	default:
		return "unknown"
	}
}
