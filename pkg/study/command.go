package study

import "unicode/utf8"

// Command is a single-character instruction typed at the quiz prompt.
type Command int

const (
	CmdUnknown Command = iota
	CmdSave
	CmdSaveQuit
	CmdList
	CmdShowWindow
)

func (c Command) String() string {
	switch c {
	case CmdSave:
		return "save"
	case CmdSaveQuit:
		return "save-and-quit"
	case CmdList:
		return "list"
	case CmdShowWindow:
		return "show-window"
	default:
		return "unknown"
	}
}

// ParseCommand reports whether input is a command rather than an answer.
// Any one-character input is a command; unrecognized ones parse as CmdUnknown.
func ParseCommand(input string) (Command, bool) {
	if utf8.RuneCountInString(input) != 1 {
		return CmdUnknown, false
	}
	switch input {
	case "S":
		return CmdSave, true
	case "Q":
		return CmdSaveQuit, true
	case "L":
		return CmdList, true
	case "W":
		return CmdShowWindow, true
	}
	return CmdUnknown, true
}
