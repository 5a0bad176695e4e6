package calculator

import "github.com/shopspring/decimal"

// ResolveParticipants returns the participants who share an expense: the
// expense's own list when it has one, otherwise the split's participants.
func ResolveParticipants(expense Expense, splitParticipants []string) []string {
	if len(expense.Participants) > 0 {
		return expense.Participants
	}
	return splitParticipants
}

// LiabilityFor computes how much each participant owes for one expense.
//
// Malformed expenses never fail: an empty participant set yields an empty
// map, and a custom split without an entry for a participant charges that
// participant nothing. Shares are not rounded, so fractional cents carry
// into the running balance.
//
// For a settlement the whole amount is owed by the recipient, that is every
// participant other than the payer.
func LiabilityFor(expense Expense, splitParticipants []string) map[string]decimal.Decimal {
	participants := ResolveParticipants(expense, splitParticipants)
	liability := make(map[string]decimal.Decimal, len(participants))
	if len(participants) == 0 {
		return liability
	}

	if expense.Kind == KindSettlement {
		recipients := make([]string, 0, len(participants))
		for _, p := range participants {
			if p != expense.PaidBy {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) > 0 {
			splitEqually(liability, expense.Amount, recipients)
			return liability
		}
	}

	switch rule := expense.Rule.(type) {
	case CustomSplit:
		if rule.Amounts != nil {
			for _, p := range participants {
				liability[p] = liability[p].Add(rule.Amounts[p])
			}
			return liability
		}
		splitEqually(liability, expense.Amount, participants)
	case EqualSplit, nil:
		splitEqually(liability, expense.Amount, participants)
	default:
		// Unreachable while Rule is sealed.
		splitEqually(liability, expense.Amount, participants)
	}
	return liability
}

func splitEqually(liability map[string]decimal.Decimal, amount decimal.Decimal, participants []string) {
	share := amount.Div(decimal.NewFromInt(int64(len(participants))))
	for _, p := range participants {
		liability[p] = liability[p].Add(share)
	}
}
