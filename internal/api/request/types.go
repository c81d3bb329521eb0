package request

// PlayerSubmission is one player's side of a submitted match result
type PlayerSubmission struct {
	ID       string `json:"id"`
	Goals    int    `json:"goals"`
	Passes   int    `json:"passes"`
	Shots    int    `json:"shots"`
	IsWinner bool   `json:"isWinner"`
}

// SubmitMatchRequest is the body of POST /api/matches/submit
type SubmitMatchRequest struct {
	Player1 PlayerSubmission `json:"player1"`
	Player2 PlayerSubmission `json:"player2"`
}
