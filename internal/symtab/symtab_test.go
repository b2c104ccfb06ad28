package symtab

import "testing"

const sampleListing = `
/tmp/a.out:     file format elf64-x86-64


Disassembly of section .init:

0000000000001000 <_init>:
    1000:	f3 0f 1e fa          	endbr64
    1004:	48 83 ec 08          	sub    $0x8,%rsp

Disassembly of section .text:

0000000000001139 <main>:
    1139:	55                   	push   %rbp
    113a:	48 89 e5             	mov    %rsp,%rbp
    1146:	c3                   	ret

0000000000001147 <helper.part.0>:
    1147:	c3                   	ret
`

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]uint64
	}{
		{
			name: "single symbol",
			text: "0000000000001139 <main>:\n",
			want: map[string]uint64{"main": 0x1139},
		},
		{
			name: "realistic listing",
			text: sampleListing,
			want: map[string]uint64{
				"_init":         0x1000,
				"main":          0x1139,
				"helper.part.0": 0x1147,
			},
		},
		{
			name: "empty text",
			text: "",
			want: map[string]uint64{},
		},
		{
			name: "no matching lines",
			text: "push %rbp\nmov %rsp,%rbp\nDisassembly of section .text:\n",
			want: map[string]uint64{},
		},
		{
			name: "duplicate name keeps the later address",
			text: "0000000000001000 <dup>:\n0000000000002000 <dup>:\n",
			want: map[string]uint64{"dup": 0x2000},
		},
		{
			name: "header not at line start is skipped",
			text: "  0000000000001139 <main>:\n",
			want: map[string]uint64{},
		},
		{
			name: "trailing text after colon is skipped",
			text: "0000000000001139 <main>: extra\n",
			want: map[string]uint64{},
		},
		{
			name: "name with disallowed characters is skipped",
			text: "0000000000001139 <ma in>:\n",
			want: map[string]uint64{},
		},
		{
			name: "colon and period allowed in names",
			text: "0000000000001139 <std::string.cold>:\n",
			want: map[string]uint64{"std::string.cold": 0x1139},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Build() produced %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for name, addr := range tt.want {
				gotAddr, ok := got.Lookup(name)
				if !ok {
					t.Errorf("Lookup(%q) missing", name)
					continue
				}
				if gotAddr != addr {
					t.Errorf("Lookup(%q) = %#x, want %#x", name, gotAddr, addr)
				}
			}
		})
	}
}

func TestEntriesSortedByAddress(t *testing.T) {
	table := Build(sampleListing)
	entries := table.Entries()

	if len(entries) != 3 {
		t.Fatalf("Entries() returned %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Addr > entries[i].Addr {
			t.Errorf("Entries() out of order at %d: %#x > %#x",
				i, entries[i-1].Addr, entries[i].Addr)
		}
	}
}

func TestEntriesDemangling(t *testing.T) {
	table := Build("0000000000001139 <_Z3foov>:\n0000000000001200 <plain_name>:\n")
	entries := table.Entries()

	byName := make(map[string]Entry)
	for _, e := range entries {
		byName[e.Name] = e
	}

	if e := byName["_Z3foov"]; e.Demangled != "foo()" {
		t.Errorf("demangled %q, want %q", e.Demangled, "foo()")
	}
	// Unmangled names keep their spelling as the display name.
	if e := byName["plain_name"]; e.Demangled != "plain_name" {
		t.Errorf("demangled %q, want %q", e.Demangled, "plain_name")
	}
}
