package game

// Stage is the position of a game in its lifecycle.
type Stage uint8

const (
	Lobby Stage = iota
	Dealing
	FirstAuction
	Exchange
	SecondAuction
	Showdown
	Finished
)

func (s Stage) String() string {
	switch s {
	case Lobby:
		return "lobby"
	case Dealing:
		return "dealing"
	case FirstAuction:
		return "first-auction"
	case Exchange:
		return "exchange"
	case SecondAuction:
		return "second-auction"
	case Showdown:
		return "showdown"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// InPlay reports whether cards have been dealt and the hand is undecided.
func (s Stage) InPlay() bool {
	return s == FirstAuction || s == Exchange || s == SecondAuction
}

// Step tells the caller what a state transition requires it to announce.
type Step uint8

const (
	// StepDeal: the next player in join order was dealt a hand.
	StepDeal Step = iota
	// StepBet: the next player must be prompted to bet.
	StepBet
	// StepChange: the next player must be prompted to exchange cards.
	StepChange
	// StepExchange: the first auction closed; announce the next stage and
	// prompt the next player to exchange.
	StepExchange
	// StepSecondAuction: the exchange closed; announce the next stage and
	// prompt the next player to bet.
	StepSecondAuction
	// StepShowdown: betting is over; announce the last stage.
	StepShowdown
)

func (s Step) String() string {
	switch s {
	case StepDeal:
		return "deal"
	case StepBet:
		return "bet"
	case StepChange:
		return "change"
	case StepExchange:
		return "exchange"
	case StepSecondAuction:
		return "second-auction"
	case StepShowdown:
		return "showdown"
	default:
		return "unknown"
	}
}
