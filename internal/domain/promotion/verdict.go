package promotion

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reason classifies why a promotion was rejected. These are expected
// business outcomes returned as data, never raised as errors.
type Reason string

const (
	ReasonNotFound       Reason = "NOT_FOUND"
	ReasonDeactivated    Reason = "DEACTIVATED"
	ReasonNotStarted     Reason = "NOT_STARTED"
	ReasonExpired        Reason = "EXPIRED"
	ReasonUsageExhausted Reason = "USAGE_EXHAUSTED"
	ReasonBelowMinimum   Reason = "BELOW_MINIMUM"
	ReasonAlreadyUsed    Reason = "ALREADY_USED"
)

type Verdict struct {
	Valid          bool
	Reason         Reason
	Message        string
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

func rejected(reason Reason, message string) Verdict {
	return Verdict{Valid: false, Reason: reason, Message: message}
}

// Validate runs the redemption checks in order, short-circuiting on the
// first failure. alreadyUsed is the caller-supplied result of the
// per-customer usage lookup; it is only meaningful when a customer
// identity accompanied the request.
func (p *Promotion) Validate(now time.Time, orderAmount decimal.Decimal, alreadyUsed bool) Verdict {
	if !p.active {
		return rejected(ReasonDeactivated, "promotion has been deactivated")
	}
	if now.Before(p.startsAt) {
		return rejected(ReasonNotStarted,
			fmt.Sprintf("promotion is not valid before %s", p.startsAt.Format(time.RFC3339)))
	}
	if now.After(p.endsAt) {
		return rejected(ReasonExpired,
			fmt.Sprintf("promotion expired on %s", p.endsAt.Format(time.RFC3339)))
	}
	if p.usageLimit != nil && p.usageCount >= *p.usageLimit {
		return rejected(ReasonUsageExhausted, "promotion usage limit has been reached")
	}
	if orderAmount.LessThan(p.minOrderAmount) {
		return rejected(ReasonBelowMinimum,
			fmt.Sprintf("order amount is below the minimum of %s", p.minOrderAmount.StringFixed(2)))
	}
	if alreadyUsed {
		return rejected(ReasonAlreadyUsed, "promotion has already been used by this customer")
	}

	discount := p.discount.AmountFor(orderAmount)
	return Verdict{
		Valid:          true,
		Message:        "promotion is valid",
		DiscountAmount: discount,
		FinalAmount:    orderAmount.Sub(discount),
	}
}
