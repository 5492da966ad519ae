package main

import (
	"debug/elf"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <binary>",
	Short: "List binary metadata sections in a linked ELF binary",
	Long: "Inspect a linked ELF binary for sanmd_* metadata sections and their\n" +
		"__start_/__stop_ boundary symbols.",
	Args: cobra.ExactArgs(1),
	RunE: sectionsExecution,
}

// coveredEntryTail is the fixed part of a covered record after the
// function address: a 32-bit size and a 32-bit feature mask.
const coveredEntryTail = 8

func sectionsExecution(cmd *cobra.Command, args []string) error {
	f, err := elf.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse ELF file: %w", err)
	}
	defer f.Close()

	ptrSize := uint64(8)
	if f.Class == elf.ELFCLASS32 {
		ptrSize = 4
	}

	out := cmd.OutOrStdout()
	found := 0
	for _, sec := range f.Sections {
		if !strings.HasPrefix(sec.Name, "sanmd_") {
			continue
		}
		found++
		fmt.Fprintf(out, "%s: %d bytes", sec.Name, sec.Size)
		if sec.Name == "sanmd_covered" {
			entry := ptrSize + coveredEntryTail
			fmt.Fprintf(out, " (~%d records)", sec.Size/entry)
		}
		fmt.Fprintln(out)
	}
	if found == 0 {
		fmt.Fprintln(out, "no sanmd_* sections found")
		return nil
	}

	// Boundary markers may be absent entirely when the linker
	// discarded every record; that is not an error.
	syms, err := f.Symbols()
	if err != nil {
		return nil
	}
	for _, sym := range syms {
		if strings.HasPrefix(sym.Name, "__start_sanmd_") || strings.HasPrefix(sym.Name, "__stop_sanmd_") {
			fmt.Fprintf(out, "%s = %#x\n", sym.Name, sym.Value)
		}
	}
	return nil
}
