package lexer

// Cursor walks a line token by token, keeping the current byte offset.
// Token offsets returned by a cursor are absolute within the line.
type Cursor struct {
	tok  *Tokenizer
	line string
	pos  int
}

func NewCursor(tok *Tokenizer, line string) *Cursor {
	tok.init()
	return &Cursor{tok: tok, line: line}
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() Token {
	return c.tok.Peek(c.line[c.pos:]).shift(c.pos)
}

// Next returns the next token and moves past it. Error tokens are not
// consumed.
func (c *Cursor) Next() Token {
	t := c.Peek()
	if t.Kind != KindError {
		c.pos = t.End
	}
	return t
}

// SeparatedByWhitespace reports whether the text right after the last
// consumed token starts with whitespace, or the line is exhausted.
func (c *Cursor) SeparatedByWhitespace() bool {
	return c.pos >= len(c.line) || IsSpace(c.line[c.pos])
}

// Pos returns the offset of the first unconsumed byte.
func (c *Cursor) Pos() int { return c.pos }

// Rest returns the unconsumed part of the line.
func (c *Cursor) Rest() string { return c.line[c.pos:] }

func (c *Cursor) Line() string { return c.line }
