package quotes

import (
	"fmt"
	"strings"

	"github.com/MysticalWizard/electricalwizard/internal/store"
)

// Format renders a quote for display: "<text>" — <author>[, <context>], <year>.
func Format(q *store.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q — %s", q.Text, q.Author)
	if q.Context != "" {
		b.WriteString(", ")
		b.WriteString(q.Context)
	}
	if q.Year != 0 {
		fmt.Fprintf(&b, ", %d", q.Year)
	}
	return b.String()
}
