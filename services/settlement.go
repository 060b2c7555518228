package services

import "github.com/Dominicushuy/bets-backend/models"

// BetOutcome is one bet's settled result.
type BetOutcome struct {
	Bet      models.Bet
	IsWinner bool
	Payout   int64
}

// SettlementResult is the deterministic outcome of a round: every bet marked
// won or lost, and the aggregate payout.
type SettlementResult struct {
	Outcomes    []BetOutcome
	WinnerCount int
	TotalPayout int64
}

// ComputeSettlement decides each bet against the winning number. A bet wins
// iff its selected number equals the winning number exactly; a winning stake
// pays amount * multiplier. The input must be the round's complete bet set —
// partial settlement is never a valid outcome.
func ComputeSettlement(bets []models.Bet, winningNumber string, multiplier int64) SettlementResult {
	result := SettlementResult{Outcomes: make([]BetOutcome, 0, len(bets))}

	for _, bet := range bets {
		outcome := BetOutcome{Bet: bet}
		if bet.SelectedNumber == winningNumber {
			outcome.IsWinner = true
			outcome.Payout = bet.Amount * multiplier
			result.WinnerCount++
			result.TotalPayout += outcome.Payout
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result
}
