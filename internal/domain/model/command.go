package model

import "strings"

// Verb is the command word of a single-line operator instruction.
type Verb string

const (
	VerbStart   Verb = "start"
	VerbList    Verb = "list"
	VerbAdd     Verb = "add"
	VerbRemove  Verb = "remove"
	VerbStatus  Verb = "status"
	VerbUnknown Verb = "unknown"
)

// Command is the parsed form of one operator line: a verb plus the remainder
// of the line as a free-text argument. Raw keeps the original line for help
// replies.
type Command struct {
	Verb Verb
	Arg  string
	Raw  string
}

// ParseCommand splits a single line into verb and argument. The verb is the
// first token, lowercased; a leading "/" and a "@botname" suffix are
// tolerated so the same parser serves Telegram command syntax. The argument
// is the rest of the line with surrounding whitespace trimmed and internal
// spacing preserved.
func ParseCommand(line string) Command {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{Verb: VerbUnknown, Raw: line}
	}

	tok, arg := trimmed, ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		tok, arg = trimmed[:i], strings.TrimSpace(trimmed[i+1:])
	}
	tok = strings.TrimPrefix(tok, "/")
	if at := strings.Index(tok, "@"); at >= 0 {
		tok = tok[:at]
	}

	switch v := Verb(strings.ToLower(tok)); v {
	case VerbStart, VerbList, VerbAdd, VerbRemove, VerbStatus:
		return Command{Verb: v, Arg: arg, Raw: line}
	default:
		return Command{Verb: VerbUnknown, Arg: arg, Raw: line}
	}
}
