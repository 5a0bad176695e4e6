package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	participants := []string{"Alice", "Bob", "Charlie"}
	expenses := []Expense{
		{Amount: dec("90"), PaidBy: "Alice", Rule: EqualSplit{}},
		{
			Amount:       dec("40"),
			PaidBy:       "Bob",
			Participants: []string{"Bob", "Charlie"},
			Rule:         CustomSplit{Amounts: map[string]decimal.Decimal{"Bob": dec("10"), "Charlie": dec("30")}},
		},
		{Amount: dec("25"), PaidBy: "Charlie", Participants: []string{"Charlie", "Alice"}, Rule: EqualSplit{}, Kind: KindSettlement},
	}

	s := Summarize(participants, dec("200"), expenses)

	assertAmount(t, "TotalSpend", s.TotalSpend, "130")
	assertAmount(t, "TotalSettled", s.TotalSettled, "25")
	assertAmount(t, "BudgetLeft", s.BudgetLeft, "70")
	assertAmount(t, "Alice share", s.Shares["Alice"], "30")
	assertAmount(t, "Bob share", s.Shares["Bob"], "40")
	assertAmount(t, "Charlie share", s.Shares["Charlie"], "60")
}

func TestSummarize_SettlementStillMovesBalances(t *testing.T) {
	participants := []string{"Alice", "Bob"}
	expenses := []Expense{
		{Amount: dec("30"), PaidBy: "Bob", Participants: []string{"Bob", "Alice"}, Rule: EqualSplit{}, Kind: KindSettlement},
	}

	s := Summarize(participants, dec("100"), expenses)
	if !s.TotalSpend.IsZero() {
		t.Errorf("settlement counted as spend: %s", s.TotalSpend)
	}
	assertAmount(t, "BudgetLeft", s.BudgetLeft, "100")

	bals := ComputeNetBalances(participants, expenses)
	assertAmount(t, "Bob net", balanceOf(t, bals, "Bob").NetBalance, "30")
	assertAmount(t, "Alice net", balanceOf(t, bals, "Alice").NetBalance, "-30")
}

func TestSummarize_OverBudget(t *testing.T) {
	s := Summarize([]string{"Alice"}, dec("50"), []Expense{
		{Amount: dec("80"), PaidBy: "Alice", Rule: EqualSplit{}},
	})
	assertAmount(t, "BudgetLeft", s.BudgetLeft, "-30")
}

func TestParticipantPosition(t *testing.T) {
	edges := []DebtEdge{
		{From: "B", To: "A", Amount: dec("30")},
		{From: "C", To: "A", Amount: dec("20")},
		{From: "C", To: "B", Amount: dec("5")},
	}

	a := ParticipantPosition(edges, "A")
	assertAmount(t, "A owes", a.Owes, "0")
	assertAmount(t, "A owed", a.Owed, "50")

	b := ParticipantPosition(edges, "B")
	assertAmount(t, "B owes", b.Owes, "30")
	assertAmount(t, "B owed", b.Owed, "5")

	z := ParticipantPosition(edges, "Z")
	if !z.Owes.IsZero() || !z.Owed.IsZero() {
		t.Errorf("uninvolved participant has a position: %+v", z)
	}
}

func TestUnknownParticipants(t *testing.T) {
	got := UnknownParticipants([]string{"Alice", "Bob"}, []Expense{
		{Amount: dec("10"), PaidBy: "Mallory", Participants: []string{"Alice", "Trent"}},
		{Amount: dec("10"), PaidBy: "Alice"},
		{Amount: dec("10"), PaidBy: "Trent"},
	})
	want := []string{"Mallory", "Trent"}
	if len(got) != len(want) {
		t.Fatalf("UnknownParticipants() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnknownParticipants()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
