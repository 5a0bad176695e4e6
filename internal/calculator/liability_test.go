package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if got.Sub(dec(want)).Abs().GreaterThan(dec("0.000001")) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

func TestLiabilityFor(t *testing.T) {
	everyone := []string{"Alice", "Bob", "Charlie", "Diana"}

	tests := []struct {
		name         string
		expense      Expense
		participants []string
		want         map[string]string
	}{
		{
			name:         "equal split across all split participants",
			expense:      Expense{Amount: dec("100"), PaidBy: "Alice", Rule: EqualSplit{}},
			participants: everyone,
			want:         map[string]string{"Alice": "25", "Bob": "25", "Charlie": "25", "Diana": "25"},
		},
		{
			name: "equal split across listed participants",
			expense: Expense{
				Amount:       dec("30"),
				PaidBy:       "Alice",
				Participants: []string{"Bob", "Charlie"},
				Rule:         EqualSplit{},
			},
			participants: everyone,
			want:         map[string]string{"Bob": "15", "Charlie": "15"},
		},
		{
			name: "custom amounts",
			expense: Expense{
				Amount:       dec("90"),
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob"},
				Rule:         CustomSplit{Amounts: map[string]decimal.Decimal{"Alice": dec("30"), "Bob": dec("60")}},
			},
			participants: everyone,
			want:         map[string]string{"Alice": "30", "Bob": "60"},
		},
		{
			name: "custom split missing an entry charges zero",
			expense: Expense{
				Amount:       dec("90"),
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob", "Charlie"},
				Rule:         CustomSplit{Amounts: map[string]decimal.Decimal{"Alice": dec("30"), "Bob": dec("60")}},
			},
			participants: everyone,
			want:         map[string]string{"Alice": "30", "Bob": "60", "Charlie": "0"},
		},
		{
			name: "custom split without amounts falls back to equal",
			expense: Expense{
				Amount:       dec("40"),
				PaidBy:       "Alice",
				Participants: []string{"Alice", "Bob"},
				Rule:         CustomSplit{},
			},
			participants: everyone,
			want:         map[string]string{"Alice": "20", "Bob": "20"},
		},
		{
			name:         "missing rule splits equally",
			expense:      Expense{Amount: dec("10"), PaidBy: "Alice", Participants: []string{"Alice", "Bob"}},
			participants: everyone,
			want:         map[string]string{"Alice": "5", "Bob": "5"},
		},
		{
			name: "settlement charges the recipient the full amount",
			expense: Expense{
				Amount:       dec("30"),
				PaidBy:       "Bob",
				Participants: []string{"Bob", "Alice"},
				Rule:         EqualSplit{},
				Kind:         KindSettlement,
			},
			participants: everyone,
			want:         map[string]string{"Alice": "30"},
		},
		{
			name:         "no participants anywhere yields empty liability",
			expense:      Expense{Amount: dec("10"), PaidBy: "Alice", Rule: EqualSplit{}},
			participants: nil,
			want:         map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LiabilityFor(tt.expense, tt.participants)
			if len(got) != len(tt.want) {
				t.Fatalf("LiabilityFor() returned %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for p, want := range tt.want {
				share, ok := got[p]
				if !ok {
					t.Errorf("missing liability for %s", p)
					continue
				}
				assertAmount(t, p, share, want)
			}
		})
	}
}

func TestLiabilityFor_PreservesFractions(t *testing.T) {
	expense := Expense{Amount: dec("100"), PaidBy: "Alice", Rule: EqualSplit{}}
	got := LiabilityFor(expense, []string{"Alice", "Bob", "Charlie"})

	total := decimal.Zero
	for _, share := range got {
		if share.Equal(dec("33.33")) {
			t.Errorf("share was rounded to cents: %s", share)
		}
		total = total.Add(share)
	}
	assertAmount(t, "sum of shares", total, "100")
}

func TestLiabilityFor_DoesNotMutateInput(t *testing.T) {
	amounts := map[string]decimal.Decimal{"Alice": dec("5")}
	expense := Expense{
		Amount:       dec("10"),
		PaidBy:       "Alice",
		Participants: []string{"Alice", "Bob"},
		Rule:         CustomSplit{Amounts: amounts},
	}

	LiabilityFor(expense, nil)

	if len(amounts) != 1 {
		t.Errorf("custom amounts were modified: %v", amounts)
	}
	if len(expense.Participants) != 2 {
		t.Errorf("participants were modified: %v", expense.Participants)
	}
}

func TestResolveParticipants(t *testing.T) {
	split := []string{"Alice", "Bob"}

	if got := ResolveParticipants(Expense{}, split); len(got) != 2 {
		t.Errorf("absent participants should fall back to split, got %v", got)
	}
	if got := ResolveParticipants(Expense{Participants: []string{}}, split); len(got) != 2 {
		t.Errorf("empty participants should fall back to split, got %v", got)
	}
	if got := ResolveParticipants(Expense{Participants: []string{"Bob"}}, split); len(got) != 1 || got[0] != "Bob" {
		t.Errorf("listed participants should win, got %v", got)
	}
}
