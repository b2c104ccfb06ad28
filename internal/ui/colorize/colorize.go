// Package colorize applies terminal syntax highlighting to backend
// disassembly listings.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// getAssemblyLexer returns an appropriate assembly lexer with fallbacks.
// objdump emits GAS syntax, so GAS variants come first.
func getAssemblyLexer() chroma.Lexer {
	candidates := []string{"gas", "GAS", "Gas", "nasm", "armasm"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getDisasmStyle returns the disassembly style with fallbacks
func getDisasmStyle() *chroma.Style {
	// Try our custom style first, then fallbacks
	candidates := []string{"disasm-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	// Try high-color first, then fallback
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// colorsDisabled honors the DISVIEW_NO_COLOR opt-out.
func colorsDisabled() bool {
	return os.Getenv("DISVIEW_NO_COLOR") != ""
}

// Listing colorizes a whole backend listing line by line, preserving the
// original layout.
func Listing(text string) string {
	if colorsDisabled() {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = Line(line)
	}
	return strings.Join(lines, "\n")
}

// Line colorizes a single listing line. Symbol headers get the label
// color, instruction lines get a gray address column with the remainder
// highlighted by chroma, and anything else (section banners, the file
// format line) passes through the lexer whole.
func Line(line string) string {
	if colorsDisabled() {
		return line
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return line
	}

	// Symbol header: "0000000000001139 <main>:"
	if strings.HasSuffix(trimmed, ">:") && isHexPrefix(trimmed) {
		return fmt.Sprintf("\033[38;2;255;215;0m%s\033[0m", line)
	}

	// Instruction line: "    1139:\t55\tpush   %rbp"
	if addr, rest, ok := splitInstruction(line); ok {
		addrColored := fmt.Sprintf("\033[38;2;128;128;128m%s\033[0m", addr)
		return addrColored + colorizeFullLine(rest)
	}

	return colorizeFullLine(line)
}

// isHexPrefix reports whether the line starts with at least one hex digit.
func isHexPrefix(s string) bool {
	return len(s) > 0 && isHexChar(s[0])
}

// splitInstruction splits an objdump instruction line into its address
// column (including the colon) and the remainder. Lines without the
// "<spaces><hex>:" shape are left alone.
func splitInstruction(line string) (addr, rest string, ok bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	start := i
	for i < len(line) && isHexChar(line[i]) {
		i++
	}
	if i == start || i >= len(line) || line[i] != ':' {
		return "", "", false
	}
	return line[:i+1], line[i+1:], true
}

// isHexChar checks if a character is a hexadecimal digit
func isHexChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// colorizeFullLine uses Chroma to colorize one line of assembly text.
func colorizeFullLine(line string) string {
	lexer := getAssemblyLexer()
	if lexer == nil {
		return line
	}

	// Make sure our custom style is registered
	_ = DisasmDark // Force registration

	style := getDisasmStyle()
	formatter := getTerminalFormatter()

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}

	return buf.String()
}
