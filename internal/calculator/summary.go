package calculator

import "github.com/shopspring/decimal"

// Summary is the spend overview of a split.
type Summary struct {
	// TotalSpend sums regular expenses only. Settlements move money between
	// participants and are never spend.
	TotalSpend   decimal.Decimal
	TotalSettled decimal.Decimal
	// BudgetLeft is budget minus TotalSpend and goes negative when over budget.
	BudgetLeft decimal.Decimal
	// Shares is each split participant's liability across regular expenses.
	Shares map[string]decimal.Decimal
}

// Summarize computes spend totals for a split.
func Summarize(splitParticipants []string, budget decimal.Decimal, expenses []Expense) Summary {
	s := Summary{
		TotalSpend:   decimal.Zero,
		TotalSettled: decimal.Zero,
		Shares:       make(map[string]decimal.Decimal, len(splitParticipants)),
	}
	for _, p := range splitParticipants {
		s.Shares[p] = decimal.Zero
	}

	for _, expense := range expenses {
		if expense.Kind == KindSettlement {
			s.TotalSettled = s.TotalSettled.Add(expense.Amount)
			continue
		}
		s.TotalSpend = s.TotalSpend.Add(expense.Amount)
		for participant, share := range LiabilityFor(expense, splitParticipants) {
			if _, ok := s.Shares[participant]; ok {
				s.Shares[participant] = s.Shares[participant].Add(share)
			}
		}
	}

	s.BudgetLeft = budget.Sub(s.TotalSpend)
	return s
}

// Position is one participant's view of a settlement plan.
type Position struct {
	Owes decimal.Decimal // sum of transfers the participant must make
	Owed decimal.Decimal // sum of transfers the participant will receive
}

// ParticipantPosition totals the instructions that involve participant.
func ParticipantPosition(edges []DebtEdge, participant string) Position {
	pos := Position{Owes: decimal.Zero, Owed: decimal.Zero}
	for _, e := range edges {
		if e.From == participant {
			pos.Owes = pos.Owes.Add(e.Amount)
		}
		if e.To == participant {
			pos.Owed = pos.Owed.Add(e.Amount)
		}
	}
	return pos
}

// UnknownParticipants lists payers and listed participants that are not
// part of the split, in first-seen order. Their amounts are missing from
// ComputeNetBalances, so conservation does not hold when this is non-empty.
func UnknownParticipants(splitParticipants []string, expenses []Expense) []string {
	known := make(map[string]bool, len(splitParticipants))
	for _, p := range splitParticipants {
		known[p] = true
	}

	var unknown []string
	add := func(p string) {
		if known[p] {
			return
		}
		known[p] = true
		unknown = append(unknown, p)
	}
	for _, expense := range expenses {
		add(expense.PaidBy)
		for _, p := range expense.Participants {
			add(p)
		}
	}
	return unknown
}
