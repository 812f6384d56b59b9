package analyzer

import "strings"

// asciiPunctuation is the POSIX punct class. Unicode punctuation (curly
// quotes, em-dashes, full-width marks) is not included and is never stripped.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punctTable = func() (t [256]bool) {
	for i := 0; i < len(asciiPunctuation); i++ {
		t[asciiPunctuation[i]] = true
	}
	return t
}()

// IsPunct reports whether r is an ASCII punctuation character.
func IsPunct(r rune) bool {
	return r >= 0 && r < 0x80 && punctTable[r]
}

// IsSpace reports whether r is one of the ASCII whitespace characters
// space, tab, LF, VT, FF or CR. Other Unicode spaces are token content.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isPunctByte(c byte) bool { return punctTable[c] }

func isSpaceByte(c byte) bool { return IsSpace(rune(c)) }

// StripBoundaryPunctuation removes punctuation runs that touch whitespace or
// either end of the line. Punctuation inside a token is kept, so "I'm",
// "well-known" and "3.14" survive intact.
func StripBoundaryPunctuation(line string) string {
	if strings.IndexFunc(line, IsPunct) < 0 {
		return line
	}
	return stripLeading(stripTrailing(line))
}

// stripTrailing replaces each punctuation run followed by whitespace or the
// end of the line, together with that whitespace, by a single space.
func stripTrailing(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	i := 0
	for i < len(line) {
		if !isPunctByte(line[i]) {
			b.WriteByte(line[i])
			i++
			continue
		}

		j := i
		for j < len(line) && isPunctByte(line[j]) {
			j++
		}
		k := j
		for k < len(line) && isSpaceByte(line[k]) {
			k++
		}

		if k > j || j == len(line) {
			b.WriteByte(' ')
			i = k
			continue
		}
		b.WriteString(line[i:j])
		i = j
	}
	return b.String()
}

// stripLeading replaces each punctuation run preceded by the start of the
// line or by whitespace, together with that whitespace, by a single space.
func stripLeading(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	i := 0
	for i < len(line) {
		j := i
		for j < len(line) && isSpaceByte(line[j]) {
			j++
		}

		if (i == 0 || j > i) && j < len(line) && isPunctByte(line[j]) {
			k := j
			for k < len(line) && isPunctByte(line[k]) {
				k++
			}
			b.WriteByte(' ')
			i = k
			continue
		}

		if j > i {
			b.WriteString(line[i:j])
			i = j
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}
