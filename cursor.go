package nitter

import "fmt"

// CursorState is the tag of a Cursor.
type CursorState int

const (
	CursorInitial CursorState = iota
	CursorMore
	CursorEnd
)

// Cursor is the pagination position of a stream.
// Initial → More* → End; a cursor never moves backwards.
type Cursor struct {
	State CursorState
	// Token is the query string of the "load more" link, verbatim. Set only for CursorMore.
	Token string
}

// InitialCursor returns the cursor of a stream that has not fetched anything yet.
func InitialCursor() Cursor { return Cursor{State: CursorInitial} }

// MoreCursor returns a cursor pointing at the page behind token.
func MoreCursor(token string) Cursor { return Cursor{State: CursorMore, Token: token} }

// EndCursor returns the cursor of an exhausted timeline.
func EndCursor() Cursor { return Cursor{State: CursorEnd} }

// IsEnd reports whether no further pages exist.
func (c Cursor) IsEnd() bool { return c.State == CursorEnd }

// Advance returns the cursor after moving to next. End is absorbing and
// nothing moves back to Initial.
func (c Cursor) Advance(next Cursor) Cursor {
	if c.State == CursorEnd || next.State == CursorInitial {
		return c
	}
	return next
}

func (c Cursor) String() string {
	switch c.State {
	case CursorInitial:
		return "initial"
	case CursorMore:
		return fmt.Sprintf("more(%s)", c.Token)
	default:
		return "end"
	}
}
