package economy

// GameType identifies which mini-game produced a round.
type GameType string

// Known mini-games. Any other tag is accepted and scored as pure chance.
const (
	GameSpeedChallenge GameType = "speed-challenge"
	GameMindPuzzles    GameType = "mind-puzzles"
	GameMemoryMatch    GameType = "memory-match"
	GameFruitCatching  GameType = "fruit-catching"
	GameLuckyBoxes     GameType = "lucky-boxes"
	GameUnknown        GameType = "unknown"
)

// GameTypes lists the known mini-games in display order.
var GameTypes = []GameType{
	GameSpeedChallenge,
	GameMindPuzzles,
	GameMemoryMatch,
	GameFruitCatching,
	GameLuckyBoxes,
}

// GameSession is a bounded run of rounds sharing one balance snapshot and one
// payout ceiling. Times are milliseconds since the epoch.
type GameSession struct {
	SessionID      string   `json:"sessionId"`
	GameType       GameType `json:"gameType"`
	StartTime      int64    `json:"startTime"`
	EndTime        int64    `json:"endTime,omitempty"`
	InitialBalance float64  `json:"initialBalance"`
	CurrentBalance float64  `json:"currentBalance"`
	TotalSpent     float64  `json:"totalSpent"`
	TotalWon       float64  `json:"totalWon"`
	GamesPlayed    int      `json:"gamesPlayed"`
	MaxWinAllowed  float64  `json:"maxWinAllowed"`
	BetAmount      float64  `json:"betAmount"`
}

// NetResult is what the player is up (or down) in this session.
func (s *GameSession) NetResult() float64 {
	return s.TotalWon - s.TotalSpent
}

// SessionSummary is posted to the backend when a session ends.
type SessionSummary struct {
	GameSession
	Duration  int64   `json:"duration"`
	NetResult float64 `json:"netResult"`
}

// PlayerData is the engine's cached copy of the server profile.
type PlayerData struct {
	ID       string  `json:"id,omitempty"`
	Username string  `json:"username,omitempty"`
	Balance  float64 `json:"balance"`
}

// GameResult is the outcome of one round.
type GameResult struct {
	GameType       GameType `json:"gameType"`
	PlayerScore    float64  `json:"playerScore"`
	BetAmount      float64  `json:"betAmount"`
	IsWin          bool     `json:"isWin"`
	WinAmount      float64  `json:"winAmount"`
	LossAmount     float64  `json:"lossAmount"`
	Probability    float64  `json:"probability"`
	SkillFactor    float64  `json:"skillFactor"`
	EconomicFactor float64  `json:"economicFactor"`
}

// BalanceChange is the signed effect of the round on the balance.
func (r *GameResult) BalanceChange() float64 {
	if r.IsWin {
		return r.WinAmount
	}
	return -r.LossAmount
}

// UpdateResult reports the outcome of UpdatePlayerBalance. A missing
// credential is reported here with Success false rather than as an error.
type UpdateResult struct {
	Success    bool    `json:"success"`
	NewBalance float64 `json:"newBalance,omitempty"`
	Change     float64 `json:"change,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Drift compares the authoritative balance with the local projection.
type Drift struct {
	ServerBalance float64 `json:"serverBalance"`
	LocalBalance  float64 `json:"localBalance"`
	Difference    float64 `json:"difference"`
}

// InSync reports whether local and server balances agree within a cent.
func (d *Drift) InSync() bool {
	return d.Difference > -0.005 && d.Difference < 0.005
}
