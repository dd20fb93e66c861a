package scanner

import "jjcolor/internal/text"

// countingSource tracks how many reads are outstanding so a failed match
// can rewind to exactly where it started.
type countingSource struct {
	src text.Source
	n   int
}

func (c *countingSource) read() rune {
	c.n++
	return c.src.Read()
}

func (c *countingSource) unread() {
	c.n--
	c.src.Unread()
}

func (c *countingSource) rollback() bool {
	unreadN(c.src, c.n)
	c.n = 0
	return false
}

func isDigit(r rune) bool    { return r >= '0' && r <= '9' }
func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// digits consumes a run of digits and underscores and returns how many
// actual digits it saw.
func (c *countingSource) digits(accept func(rune) bool) int {
	count := 0
	for {
		r := c.read()
		switch {
		case accept(r):
			count++
		case r == '_':
		default:
			c.unread()
			return count
		}
	}
}

// exponent consumes a sign and at least one decimal digit after an
// exponent marker that was already read.
func (c *countingSource) exponent() bool {
	r := c.read()
	if r != '+' && r != '-' {
		c.unread()
	}
	return c.digits(isDigit) > 0
}

func (c *countingSource) suffix(allowed string) {
	r := c.read()
	for _, s := range allowed {
		if r == s {
			return
		}
	}
	c.unread()
}

// matchNumber consumes one Java numeric literal. On any mismatch it unreads
// everything it read and returns false.
func matchNumber(src text.Source) bool {
	c := &countingSource{src: src}

	r := c.read()
	if r == '0' {
		switch c.read() {
		case 'x', 'X':
			return c.hexLiteral()
		case 'b', 'B':
			if c.digits(isBinDigit) == 0 {
				return c.rollback()
			}
			c.suffix("lL")
			return true
		}
		c.unread()
	}

	if r == '.' {
		if c.digits(isDigit) == 0 {
			return c.rollback()
		}
		return c.decimalTail(true)
	}
	if !isDigit(r) {
		return c.rollback()
	}
	c.digits(isDigit)

	fraction := false
	if r := c.read(); r == '.' {
		fraction = true
		c.digits(isDigit)
	} else {
		c.unread()
	}
	return c.decimalTail(fraction)
}

func (c *countingSource) decimalTail(fraction bool) bool {
	r := c.read()
	if r == 'e' || r == 'E' {
		if !c.exponent() {
			return c.rollback()
		}
		c.suffix("fFdD")
		return true
	}
	c.unread()
	if fraction {
		c.suffix("fFdD")
	} else {
		c.suffix("fFdDlL")
	}
	return true
}

// hexLiteral runs after "0x". A fractional hex literal must carry a binary
// exponent ("p"), as in 0x1.8p3.
func (c *countingSource) hexLiteral() bool {
	n := c.digits(isHexDigit)
	fraction := false
	if r := c.read(); r == '.' {
		fraction = true
		n += c.digits(isHexDigit)
	} else {
		c.unread()
	}
	if n == 0 {
		return c.rollback()
	}

	r := c.read()
	if r == 'p' || r == 'P' {
		if !c.exponent() {
			return c.rollback()
		}
		c.suffix("fFdD")
		return true
	}
	c.unread()
	if fraction {
		return c.rollback()
	}
	c.suffix("lL")
	return true
}
