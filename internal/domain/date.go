package domain

import "time"

// DateLayout is the fixed layout for every message date string. The same
// string is used for ordering conversations and for building message ids, so
// two messages written in the same second can collide.
const DateLayout = "Jan 2, 2006 3:04:05 PM"

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

func ParseDate(s string) (time.Time, error) { return time.Parse(DateLayout, s) }
