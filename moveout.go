package rentbook

import "github.com/etnz/rentbook/date"

// MoveOutFinancials is the settlement of a tenant leaving the property.
type MoveOutFinancials struct {
	DepositHeld Money
	UnpaidRent  Money
	// NetRefundable is the deposit left after unpaid rent. It is negative
	// when the tenant still owes money.
	NetRefundable Money
}

// CalculateMoveOutFinancials computes what is refundable to a tenant at
// move-out: all deposits received minus the shortfall of the rent ledger.
//
// It is a projection only; [State.MoveOut] commits it.
func CalculateMoveOutFinancials(t Tenant, payments []Payment, now date.Date) (MoveOutFinancials, error) {
	installments, err := GenerateLedger(t, payments, now)
	if err != nil {
		return MoveOutFinancials{}, err
	}
	var m MoveOutFinancials
	for _, p := range payments {
		if p.TenantID == t.ID && p.Type == Deposit {
			m.DepositHeld = m.DepositHeld.Add(p.Amount)
		}
	}
	for _, i := range installments {
		m.UnpaidRent = m.UnpaidRent.Add(i.Shortfall())
	}
	m.NetRefundable = m.DepositHeld.Sub(m.UnpaidRent)
	return m, nil
}
