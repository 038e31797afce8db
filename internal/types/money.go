// README: Money value object for fares returned by the prediction API.
package types

import "fmt"

// USD is an amount in US dollars as reported by the prediction service.
type USD float64

// String formats the amount with two decimal places, e.g. "$12.50".
func (u USD) String() string {
	return fmt.Sprintf("$%.2f", float64(u))
}
