// Package sorting turns "field:direction" query tokens into an ordered list of sort keys.
package sorting

import "strings"

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is one sort key. Field is the client-facing property name, not a column.
type Order struct {
	Field     string
	Direction Direction
}

// Default is applied when a request carries no sort parameter.
var Default = []string{"id:desc"}

// Parse keeps token order: the first token is the primary key, the rest break ties.
// A direction containing "desc" sorts descending, any other direction ascending,
// and a token without a direction sorts descending. Trailing empty segments are
// dropped, so "id:" has no direction.
func Parse(tokens []string) []Order {
	orders := make([]Order, 0, len(tokens))
	for _, token := range tokens {
		parts := strings.Split(token, ":")
		for len(parts) > 1 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}

		direction := Desc
		if len(parts) > 1 && !strings.Contains(parts[1], "desc") {
			direction = Asc
		}

		orders = append(orders, Order{Field: parts[0], Direction: direction})
	}
	return orders
}

// SQL renders the order as "<column> <direction>".
func (o Order) SQL(column string) string {
	return column + " " + string(o.Direction)
}
