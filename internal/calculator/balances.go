package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MemberBalance represents the balance information for one split participant.
type MemberBalance struct {
	Participant string
	NetBalance  decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid   decimal.Decimal // Total amount fronted across all expenses
	TotalOwed   decimal.Decimal // Total liability across all expenses
}

// DebtEdge is a settlement instruction: From should transfer Amount to To.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// ComputeNetBalances aggregates payments and liabilities across every
// expense of a split.
//
// Algorithm:
//   - paid and owed start at zero for every split participant
//   - the payer is credited the full amount, whatever the rule
//   - each participant's liability from LiabilityFor is added to owed
//   - net = paid - owed
//
// The result follows the order of splitParticipants. Payers or participants
// outside the split are accumulated but not returned; see UnknownParticipants.
func ComputeNetBalances(splitParticipants []string, expenses []Expense) []MemberBalance {
	paid := make(map[string]decimal.Decimal, len(splitParticipants))
	owed := make(map[string]decimal.Decimal, len(splitParticipants))
	for _, p := range splitParticipants {
		paid[p] = decimal.Zero
		owed[p] = decimal.Zero
	}

	for _, expense := range expenses {
		paid[expense.PaidBy] = paid[expense.PaidBy].Add(expense.Amount)

		for participant, share := range LiabilityFor(expense, splitParticipants) {
			owed[participant] = owed[participant].Add(share)
		}
	}

	balances := make([]MemberBalance, 0, len(splitParticipants))
	seen := make(map[string]bool, len(splitParticipants))
	for _, p := range splitParticipants {
		if seen[p] {
			continue
		}
		seen[p] = true
		balances = append(balances, MemberBalance{
			Participant: p,
			NetBalance:  paid[p].Sub(owed[p]),
			TotalPaid:   paid[p],
			TotalOwed:   owed[p],
		})
	}
	return balances
}

type position struct {
	participant string
	remaining   decimal.Decimal
}

// ComputeSettlements turns net balances into transfers using greedy
// matching: the largest remaining debtor pays the largest remaining
// creditor until one side is exhausted.
//
// Balances within Epsilon of zero are already settled. Ties keep the input
// order. Instructions are returned in emission order, creditor amount
// descending and then debtor amount descending. This is a heuristic and does
// not always find the fewest possible transfers.
func ComputeSettlements(balances []MemberBalance) []DebtEdge {
	// Create lists of creditors (owed money) and debtors (owe money)
	var creditors, debtors []position
	for _, bal := range balances {
		switch {
		case bal.NetBalance.GreaterThan(Epsilon):
			creditors = append(creditors, position{bal.Participant, bal.NetBalance})
		case bal.NetBalance.LessThan(Epsilon.Neg()):
			debtors = append(debtors, position{bal.Participant, bal.NetBalance.Neg()})
		}
	}

	sort.SliceStable(creditors, func(a, b int) bool {
		return creditors[a].remaining.GreaterThan(creditors[b].remaining)
	})
	sort.SliceStable(debtors, func(a, b int) bool {
		return debtors[a].remaining.GreaterThan(debtors[b].remaining)
	})

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		edges = append(edges, DebtEdge{
			From:   debtor.participant,
			To:     creditor.participant,
			Amount: amount,
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if debtor.remaining.LessThan(Epsilon) {
			i++
		}
		if creditor.remaining.LessThan(Epsilon) {
			j++
		}
	}

	return edges
}

// SumNet returns the sum of all net balances. It is zero, up to division
// rounding, whenever every expense's liabilities add up to its amount.
func SumNet(balances []MemberBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, bal := range balances {
		sum = sum.Add(bal.NetBalance)
	}
	return sum
}
