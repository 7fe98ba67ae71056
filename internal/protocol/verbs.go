// Package protocol defines the line-oriented text protocol spoken between
// draw poker clients and the server.
//
// Every message is one line of space separated ASCII tokens terminated by a
// newline. The first token of a client message is the verb.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Verb is a client command.
type Verb uint8

const (
	VerbLogin Verb = iota + 1
	VerbCreate
	VerbJoin
	VerbHandCards
	VerbBet
	VerbExchange
	VerbSummary
)

var verbNames = map[Verb]string{
	VerbLogin:     "login",
	VerbCreate:    "create",
	VerbJoin:      "join",
	VerbHandCards: "handCards",
	VerbBet:       "bet",
	VerbExchange:  "exchange",
	VerbSummary:   "summary",
}

// Verbs lists every verb in protocol order.
var Verbs = []Verb{VerbLogin, VerbCreate, VerbJoin, VerbHandCards, VerbBet, VerbExchange, VerbSummary}

// String returns the wire token for the verb.
func (v Verb) String() string {
	if name, ok := verbNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseVerb maps a wire token to a verb. Verbs are case sensitive.
func ParseVerb(token string) (Verb, bool) {
	for _, v := range Verbs {
		if verbNames[v] == token {
			return v, true
		}
	}
	return 0, false
}

// ErrMalformedNumber is returned when a token that must be an integer is
// not one.
var ErrMalformedNumber = errors.New("malformed number")

// Message is one parsed client line.
type Message struct {
	Verb Verb
	Args []string // tokens after the verb
}

// Parse splits a line into tokens and resolves the verb. Blank lines and
// unknown verbs fail with ErrUnknownCommand.
func Parse(line string) (Message, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Message{}, ErrUnknownCommand
	}
	verb, ok := ParseVerb(tokens[0])
	if !ok {
		return Message{}, ErrUnknownCommand
	}
	return Message{Verb: verb, Args: tokens[1:]}, nil
}

// Int parses the argument at i as a decimal integer.
func (m Message) Int(i int) (int, error) {
	if i >= len(m.Args) {
		return 0, InvalidArguments(m.Verb)
	}
	n, err := strconv.Atoi(m.Args[i])
	if err != nil {
		return 0, fmt.Errorf("%s argument %d %q: %w", m.Verb, i+1, m.Args[i], ErrMalformedNumber)
	}
	return n, nil
}

// Arity fails with an invalid arguments error unless the message carries
// between min and max arguments. A negative max means no upper bound.
func (m Message) Arity(min, max int) error {
	n := len(m.Args)
	if n < min || (max >= 0 && n > max) {
		return InvalidArguments(m.Verb)
	}
	return nil
}
