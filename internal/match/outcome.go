package match

import (
	"fmt"

	"github.com/abdu61/TicTacToe/internal/game"
)

// Phase is where the controller is in a match.
type Phase int

const (
	PhaseAwaitingMove Phase = iota
	PhaseRoundOver
	PhaseMatchOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingMove:
		return "awaiting_move"
	case PhaseRoundOver:
		return "round_over"
	case PhaseMatchOver:
		return "match_over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Result is how a round ended.
type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultDraw Result = "draw"
)

// Outcome of a single round. Winner is set only for ResultWin.
type Outcome struct {
	Result Result          `json:"result"`
	Winner game.PlayerMark `json:"winner,omitempty"`
}

func Win(mark game.PlayerMark) Outcome { return Outcome{Result: ResultWin, Winner: mark} }

func Draw() Outcome { return Outcome{Result: ResultDraw} }

func (o Outcome) String() string {
	switch o.Result {
	case ResultWin:
		return fmt.Sprintf("win(%s)", o.Winner)
	case ResultDraw:
		return "draw"
	}
	return "none"
}

// Score counts rounds won by each side. Draws score nothing.
type Score struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// FinalOutcome is the headline of a finished match.
type FinalOutcome string

const (
	FinalHumanWin    FinalOutcome = "human_win"
	FinalOpponentWin FinalOutcome = "opponent_win"
	FinalDraw        FinalOutcome = "draw"
)

// Summary is sent once per match.
type Summary struct {
	Outcome FinalOutcome `json:"outcome"`
	Score   Score        `json:"score"`
	Text    string       `json:"text"`
}

// summarize reports the final round's result, not the cumulative leader.
func summarize(last Outcome, score Score, cfg Config) Summary {
	s := Summary{Score: score, Outcome: FinalDraw}
	switch {
	case last.Result == ResultWin && last.Winner == HumanMark:
		s.Outcome = FinalHumanWin
	case last.Result == ResultWin:
		s.Outcome = FinalOpponentWin
	}

	// The headline speaks to player 1 whoever the opponent is; only the
	// score line names the opponent.
	var headline string
	switch s.Outcome {
	case FinalHumanWin:
		headline = "You Win!"
	case FinalOpponentWin:
		headline = "You Lose!"
	default:
		headline = "It's a draw!"
	}
	scoreLine := fmt.Sprintf("Final Score: You %d : %d Computer", score.Player, score.Opponent)
	if cfg.Opponent != OpponentComputer {
		scoreLine = fmt.Sprintf("Final Score: Player 1 %d : %d %s", score.Player, score.Opponent, cfg.OpponentLabel())
	}
	s.Text = headline + "\n\n" + scoreLine
	return s
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Board       game.Board
	Phase       Phase
	Turn        game.PlayerMark
	Round       int
	Rounds      int
	Score       Score
	LastOutcome Outcome
	Config      Config
}
