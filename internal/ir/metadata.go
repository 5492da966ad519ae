package ir

// PCSection is one entry of attached program-counter section metadata:
// the record for the annotated function or instruction is emitted into
// the named section, followed by the auxiliary 32-bit words.
type PCSection struct {
	Section string
	Aux     []uint32
}

// PCSections is sidecar metadata attached to a function or an
// instruction, directing the backend to emit program-counter records
// into the listed sections.
type PCSections struct {
	Entries []PCSection
}
