package rentbook

import "github.com/etnz/rentbook/date"

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

// activeTenant is a helper for test to create an open-ended lease on property "p1".
func activeTenant(id string, rentAmount float64, dueDay int, start string) Tenant {
	return Tenant{
		ID:         id,
		Name:       "Tenant " + id,
		PropertyID: "p1",
		RentAmount: M(rentAmount),
		RentDueDay: dueDay,
		LeaseStart: day(start),
		Status:     Active,
	}
}

// pastTenant is like activeTenant for a lease that has ended.
func pastTenant(id string, rentAmount float64, dueDay int, start, end string) Tenant {
	t := activeTenant(id, rentAmount, dueDay, start)
	t.LeaseEnd = day(end)
	t.Status = Past
	return t
}

// pay is a helper for test to create a payment of a tenant on property "p1".
func pay(tenantID string, typ PaymentType, amount float64, on string) Payment {
	return Payment{
		ID:         tenantID + "-" + string(typ) + "-" + on,
		PropertyID: "p1",
		TenantID:   tenantID,
		Amount:     M(amount),
		Date:       day(on),
		Type:       typ,
		Method:     MethodCash,
	}
}

// spend is a helper for test to create a property-level payment.
func spend(propertyID string, typ PaymentType, amount float64, on, note string) Payment {
	return Payment{
		ID:         propertyID + "-" + string(typ) + "-" + on,
		PropertyID: propertyID,
		Amount:     M(amount),
		Date:       day(on),
		Type:       typ,
		Note:       note,
	}
}
