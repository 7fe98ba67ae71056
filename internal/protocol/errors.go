package protocol

import "fmt"

// Error is a protocol level failure reported to the client as Reply. The
// connection stays open.
type Error struct {
	Reply string
}

func (e *Error) Error() string {
	return "protocol: " + e.Reply
}

var (
	ErrUnknownCommand = &Error{Reply: "Unknown command."}
	ErrUsernameTaken  = &Error{Reply: "Username already in use."}
	ErrNotLoggedIn    = &Error{Reply: "Not logged in."}
	ErrAlreadyLogged  = &Error{Reply: "Already logged in."}
	ErrInvalidPlayer  = &Error{Reply: "Invalid player."}
	ErrNotYourTurn    = &Error{Reply: "Not your turn."}
	ErrNotAllowed     = &Error{Reply: "Not allowed now."}
)

// InvalidArguments reports a wrong number or kind of arguments for verb.
func InvalidArguments(verb Verb) *Error {
	return &Error{Reply: fmt.Sprintf("Invalid arguments for %s.", verb)}
}

// UnknownGame reports a game id that is not registered.
func UnknownGame(id int) *Error {
	return &Error{Reply: fmt.Sprintf("Unknown game %d.", id)}
}
