package rentbook

import (
	"slices"
	"strings"
)

// Uncategorized is the category of expenses that carry none.
const Uncategorized = "Uncategorized"

// OtherCategory is the fallback category of imported expenses.
const OtherCategory = "Other"

// Categories of the entries generated by a move-out.
const (
	DepositRefundCategory  = "Deposit Refund"
	DepositAppliedCategory = "Deposit Applied"
)

// ExpenseCategories are the categories offered for expenses.
var ExpenseCategories = []string{
	"Maintenance",
	"Repairs",
	"Utilities",
	"Taxes",
	"Insurance",
	"Management",
	"Mortgage Interest",
	"HOA",
	"Supplies",
	DepositRefundCategory,
	DepositAppliedCategory,
	OtherCategory,
}

// ResolveExpenseCategory returns the category of an expense.
//
// Older records kept the category as a "Category: details" prefix of the
// note; it is used when the structured field is empty.
func ResolveExpenseCategory(p Payment) string {
	if c := strings.TrimSpace(p.ExpenseCategory); c != "" {
		return c
	}
	if prefix, _, ok := strings.Cut(p.Note, ":"); ok {
		if c := strings.TrimSpace(prefix); c != "" {
			return c
		}
	}
	return Uncategorized
}

// KnownCategory returns the canonical spelling of c if it is one of
// ExpenseCategories, compared case-insensitively, or OtherCategory.
func KnownCategory(c string) string {
	i := slices.IndexFunc(ExpenseCategories, func(k string) bool { return strings.EqualFold(k, strings.TrimSpace(c)) })
	if i < 0 {
		return OtherCategory
	}
	return ExpenseCategories[i]
}
