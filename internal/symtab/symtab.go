// Package symtab extracts a symbol table from disassembly output. The
// backend marks each symbol with a header line such as
//
//	0000000000001139 <main>:
//
// and the indexer maps every such name to its address for lookup and
// navigation. Stripped binaries legitimately yield an empty table.
package symtab

import (
	"bufio"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// headerLine matches a symbol header anchored at line start: hex address,
// one space, the name in angle brackets, a trailing colon.
var headerLine = regexp.MustCompile(`^([0-9a-fA-F]+) <([A-Za-z0-9_:.]+)>:$`)

// Entry is one symbol definition.
type Entry struct {
	Name      string
	Demangled string // display name; equals Name when demangling fails
	Addr      uint64
}

// Table maps symbol names to addresses. Names are unique: a later
// definition of the same name overwrites the earlier one.
type Table map[string]uint64

// Build scans text in a single linear pass and collects every symbol
// header. Lines that do not match the header grammar are skipped
// individually; malformed input never aborts the build.
func Build(text string) Table {
	t := make(Table)

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		m := headerLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		addr, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			// Hex wider than 64 bits; skip the line.
			continue
		}
		t[m[2]] = addr
	}

	return t
}

// Lookup returns the address recorded for name.
func (t Table) Lookup(name string) (uint64, bool) {
	addr, ok := t[name]
	return addr, ok
}

// Entries returns all symbols sorted by address, with demangled display
// names for navigation UIs.
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for name, addr := range t {
		display := demangle.Filter(name)
		if display == "" {
			display = name
		}
		entries = append(entries, Entry{Name: name, Demangled: display, Addr: addr})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Addr != entries[j].Addr {
			return entries[i].Addr < entries[j].Addr
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
