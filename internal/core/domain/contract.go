package domain

import (
	"math"
	"time"
)

// Contract is the core aggregate: a rental agreement between the rentee and
// the lender of an item. The lifecycle is a composite of four independent
// party flags rather than a single status enum; `Active` and the rental
// window are derived from them.
type Contract struct {
	ID             int64      `json:"contractid" bson:"_id"`
	Length         int        `json:"contractlength" bson:"contractlength"` // days
	Fee            float64    `json:"contractfee" bson:"contractfee"`
	Active         bool       `json:"active" bson:"active"`
	RenteeAccept   bool       `json:"renteeaccept" bson:"renteeaccept"`
	LenderAccept   bool       `json:"lenderaccept" bson:"lenderaccept"`
	RenteeComplete bool       `json:"renteecomplete" bson:"renteecomplete"`
	LenderComplete bool       `json:"lendercomplete" bson:"lendercomplete"`
	StartDate      *time.Time `json:"contractstartdate,omitempty" bson:"contractstartdate,omitempty"`
	EndDate        *time.Time `json:"contractenddate,omitempty" bson:"contractenddate,omitempty"`
	RenteeID       int64      `json:"renteeid" bson:"renteeid"`
	ItemID         int64      `json:"itemid" bson:"itemid"`
}

// ContractFee computes the total fee for renting an item at itemRate per day
// for lengthDays days, rounded half-up to 2 decimal places.
func ContractFee(lengthDays int, itemRate float64) float64 {
	return math.Round(float64(lengthDays)*itemRate*100) / 100
}

// Accepted reports whether both parties have confirmed the contract start.
func (c *Contract) Accepted() bool {
	return c.LenderAccept && c.RenteeAccept
}

// Completed reports whether both parties have confirmed the contract end.
func (c *Contract) Completed() bool {
	return c.RenteeComplete && c.LenderComplete
}

// RefreshDerived recomputes fee and active from the current flags and stamps
// the rental window when both parties have accepted. Dates stamped on an
// earlier save are preserved when the accept flags no longer agree; they are
// never retracted.
func (c *Contract) RefreshDerived(itemRate float64, now time.Time) {
	c.Fee = ContractFee(c.Length, itemRate)
	c.Active = !c.Completed()

	if c.Accepted() {
		start := now.UTC()
		end := start.AddDate(0, 0, c.Length)
		c.StartDate = &start
		c.EndDate = &end
	}
}
