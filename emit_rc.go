package locgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultLanguage is the LANGUAGE statement argument of the string table.
const DefaultLanguage = "LANG_ENGLISH, SUBLANG_NEUTRAL"

// RCOptions controls string table rendering.
type RCOptions struct {
	Language string
}

var rcEscaper = strings.NewReplacer(
	`"`, `""`,
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeRC quotes s for use inside a resource script string literal.
func EscapeRC(s string) string {
	return rcEscaper.Replace(s)
}

var errBadRCLiteral = errors.New("malformed resource string literal")

// UnescapeRC reverses EscapeRC. It operates on the literal's contents,
// without the surrounding quotes.
func UnescapeRC(s string) (string, error) {
	if !strings.ContainsAny(s, `"\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			if i+1 >= len(s) || s[i+1] != '"' {
				return "", fmt.Errorf("%w: lone quote at offset %d", errBadRCLiteral, i)
			}
			b.WriteByte('"')
			i++
		case '\\':
			if i+1 >= len(s) {
				return "", fmt.Errorf("%w: trailing backslash", errBadRCLiteral)
			}
			i++
			switch s[i] {
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("%w: unknown escape \\%c", errBadRCLiteral, s[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// EmitStringTable writes a resource script STRINGTABLE holding entries in
// the order given, which callers keep ascending by ID.
func EmitStringTable(w io.Writer, entries []StringEntry, opts RCOptions) error {
	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#include \"winres.h\"\n#pragma code_page(65001)\nLANGUAGE %s\nSTRINGTABLE\nBEGIN\n", lang)
	for _, e := range entries {
		fmt.Fprintf(bw, "\t%d \"%s\"\n", e.ID, EscapeRC(e.Text))
	}
	bw.WriteString("END\n")
	return bw.Flush()
}
