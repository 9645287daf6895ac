package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites brep script source into something zygomys
// accepts:
//
//  1. Line comments: ; and ;; become //, the zygomys comment syntax.
//
//  2. Keywords: :vertex -> "__kw_vertex" (string literal), so keywords need
//     no global symbol and cannot collide with user variables.
//
//  3. Kebab-case: loop-length -> loop_length. zygomys reads a hyphen inside
//     an identifier as subtraction.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	src := []byte(source)
	out := make([]byte, 0, len(src)+len(src)/4)

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			j := skipQuoted(src, i)
			out = append(out, src[i:j]...)
			i = j

		case c == '`':
			j := i + 1
			for j < len(src) && src[j] != '`' {
				j++
			}
			if j < len(src) {
				j++
			}
			out = append(out, src[i:j]...)
			i = j

		case c == ';':
			for i < len(src) && src[i] == ';' {
				i++
			}
			out = append(out, '/', '/')
			for i < len(src) && src[i] != '\n' {
				out = append(out, src[i])
				i++
			}

		case c == ':' && i+1 < len(src) && src[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(src) && isLetter(src[i+1]):
			j := i + 1
			for j < len(src) && isKWChar(src[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, src[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(src) && isIdentChar(src[i-1]) && isLetter(src[i+1]):
			// A hyphen between identifier characters, not a minus operator.
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// skipQuoted returns the index just past the double-quoted literal at i,
// honoring backslash escapes. An unterminated literal runs to the end.
func skipQuoted(src []byte, i int) int {
	j := i + 1
	for j < len(src) && src[j] != '"' {
		if src[j] == '\\' && j+1 < len(src) {
			j++
		}
		j++
	}
	if j < len(src) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
