package common

import "strings"

// --------------------------------------------------------------------------
// Wire Protocol
// --------------------------------------------------------------------------

// The wire protocol is plaintext ASCII, newline-terminated, one command per
// connection:
//
//	PUT <key> <value>\n      -> no response
//	REMOVE <key>\n           -> no response
//	GET <key>\n              -> VALUE <value>\n or NOT_FOUND\n
//	anything else            -> connection closed, no response
//
// PUT and REMOVE deliberately send no response: callers cannot distinguish
// an applied write from a dropped connection. The same PUT message doubles
// as the peer replication message.

// Command operation tokens.
const (
	OpPut    = "PUT"
	OpRemove = "REMOVE"
	OpGet    = "GET"
)

// Response tokens for GET.
const (
	RespValue    = "VALUE"
	RespNotFound = "NOT_FOUND"
)

// --------------------------------------------------------------------------
// Command Parsing
// --------------------------------------------------------------------------

// Command is one parsed request line.
type Command struct {
	Op    string
	Key   string
	Value string // only set for PUT
}

// ParseCommand splits a request line into whitespace-delimited tokens and
// returns the command it encodes. The boolean return value is false for an
// unknown leading token or a command with too few tokens; such requests are
// dropped without a response. Tokens beyond the ones an operation requires
// are ignored.
func ParseCommand(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}

	switch fields[0] {
	case OpPut:
		if len(fields) < 3 {
			return Command{}, false
		}
		return Command{Op: OpPut, Key: fields[1], Value: fields[2]}, true
	case OpRemove:
		if len(fields) < 2 {
			return Command{}, false
		}
		return Command{Op: OpRemove, Key: fields[1]}, true
	case OpGet:
		if len(fields) < 2 {
			return Command{}, false
		}
		return Command{Op: OpGet, Key: fields[1]}, true
	default:
		return Command{}, false
	}
}

// FormatPut renders a PUT request line (also the replication message).
func FormatPut(key, value string) string {
	return OpPut + " " + key + " " + value + "\n"
}

// FormatRemove renders a REMOVE request line.
func FormatRemove(key string) string {
	return OpRemove + " " + key + "\n"
}

// FormatGet renders a GET request line.
func FormatGet(key string) string {
	return OpGet + " " + key + "\n"
}
