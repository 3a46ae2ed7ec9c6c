// README: Budget value object shared by the trip request, prompt and share link.
package types

import (
	"fmt"
	"strings"
)

type Money struct {
	Amount   int64  `json:"amount" form:"budget"`
	Currency string `json:"currency" form:"currency"`
}

// IsZero reports an unset budget.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) String() string {
	if m.IsZero() {
		return ""
	}
	cur := strings.ToUpper(strings.TrimSpace(m.Currency))
	if cur == "" {
		return fmt.Sprintf("%d", m.Amount)
	}
	return fmt.Sprintf("%d %s", m.Amount, cur)
}
