package protocol

import (
	"strconv"
	"strings"

	"github.com/lox/drawpoker/poker"
)

// Reply tokens sent by the server.
const (
	TokenAccepted            = "accepted"
	TokenAcceptedCreate      = "acceptedCreate"
	TokenAcceptedJoin        = "acceptedJoin"
	TokenRejectedJoin        = "rejectedJoin"
	TokenPlayerJoin          = "playerJoin"
	TokenStartGame           = "startGame"
	TokenCards               = "cards"
	TokenStartAuction        = "startAuction"
	TokenAcceptedBet         = "acceptedBet"
	TokenDeniedBet           = "deniedBet"
	TokenPlayerBet           = "playerBet"
	TokenWinner              = "winner"
	TokenNextStage           = "nextStage"
	TokenLastStage           = "lastStage"
	TokenChangeCards         = "changeCards"
	TokenAcceptedChange      = "acceptedChange"
	TokenDeniedChange        = "deniedChange"
	TokenAcceptedEndChanging = "acceptedEndChanging"
	TokenFoldWinner          = "foldWinner"
	TokenScore               = "score"
	TokenGameAborted         = "gameAborted"
)

// Reasons carried by deniedBet.
const (
	ReasonInsufficientFunds = "insufficientFunds"
	ReasonRaiseTooSmall     = "raiseTooSmall"
)

// line joins a token and its arguments with single spaces.
func line(token string, args ...any) string {
	var b strings.Builder
	b.WriteString(token)
	for _, a := range args {
		b.WriteByte(' ')
		switch v := a.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(strconv.Itoa(v))
		case interface{ String() string }:
			b.WriteString(v.String())
		}
	}
	return b.String()
}

func Accepted(playerID int) string     { return line(TokenAccepted, playerID) }
func AcceptedCreate(gameID int) string { return line(TokenAcceptedCreate, gameID) }
func AcceptedJoin(gameID int) string   { return line(TokenAcceptedJoin, gameID) }
func RejectedJoin(gameID int) string   { return line(TokenRejectedJoin, gameID) }
func PlayerJoin(name string) string    { return line(TokenPlayerJoin, name) }
func StartGame(gameID int) string      { return line(TokenStartGame, gameID) }
func GameAborted(gameID int) string    { return line(TokenGameAborted, gameID) }

// Cards lists a dealt hand.
func Cards(hand []poker.Card) string {
	return TokenCards + " " + poker.FormatCards(hand)
}

// StartAuction prompts a player to bet.
func StartAuction(cash, minimumBet, stake int) string {
	return line(TokenStartAuction, cash, minimumBet, stake)
}

func AcceptedBet() string { return TokenAcceptedBet }

// DeniedBet rejects a bet the player cannot make; the player keeps the turn.
func DeniedBet(reason string) string { return line(TokenDeniedBet, reason) }

// PlayerBet tells the rest of the table what a player did.
func PlayerBet(name, action string, amount int) string {
	return line(TokenPlayerBet, name, action, amount)
}

// Winner announces that everyone but one player folded.
func Winner(playerID int, name string, stake int) string {
	return line(TokenWinner, playerID, name, stake)
}

func NextStage() string           { return TokenNextStage }
func LastStage() string           { return TokenLastStage }
func ChangeCards() string         { return TokenChangeCards }
func DeniedChange() string        { return TokenDeniedChange }
func AcceptedEndChanging() string { return TokenAcceptedEndChanging }

// AcceptedChange confirms a swap and names the replacement card.
func AcceptedChange(index int, card poker.Card) string {
	return line(TokenAcceptedChange, index, card)
}

// FoldWinner is the showdown result when a single player was left.
func FoldWinner(name string, playerID, stake, cash int) string {
	return line(TokenFoldWinner, name, playerID, stake, cash)
}

// Score is the showdown result personalised with the recipient's own layout
// and cash.
func Score(own poker.Layout, winnerID int, winnerName string, winnerLayout poker.Layout, stake, cash int) string {
	return line(TokenScore, own, winnerID, winnerName, winnerLayout, stake, cash)
}
