package order

import "fmt"

// StatusLabeler renders statuses and rejected transitions for operators.
type StatusLabeler interface {
	// Label returns the display name of status. Unknown statuses render as their code.
	Label(status FulfillmentStatus) string

	// DescribeIllegalTransition explains why current -> target is rejected. The
	// text always names both labels.
	DescribeIllegalTransition(current, target FulfillmentStatus) string
}

// LabelSet is a StatusLabeler backed by a fixed dictionary.
type LabelSet struct {
	labels     map[FulfillmentStatus]string
	illegal    string
	finalState string
}

var (
	// HebrewLabels is the storefront and admin dashboard default.
	HebrewLabels = LabelSet{
		labels: map[FulfillmentStatus]string{
			Pending:     "ממתין",
			Printing:    "בהדפסה",
			ReadyToShip: "מוכן למשלוח",
			Shipped:     "נשלח",
			Delivered:   "נמסר",
			Cancelled:   "בוטל",
		},
		illegal:    "לא ניתן לשנות סטטוס מ\"%s\" ל\"%s\"",
		finalState: "ההזמנה במצב סופי",
	}

	EnglishLabels = LabelSet{
		labels: map[FulfillmentStatus]string{
			Pending:     "Pending",
			Printing:    "Printing",
			ReadyToShip: "Ready to ship",
			Shipped:     "Shipped",
			Delivered:   "Delivered",
			Cancelled:   "Cancelled",
		},
		illegal:    "cannot change status from \"%s\" to \"%s\"",
		finalState: "order is in a final state",
	}
)

// LabelsForLocale returns the label set for a locale tag, falling back to Hebrew.
func LabelsForLocale(locale string) LabelSet {
	switch locale {
	case "en", "en-US", "en-GB":
		return EnglishLabels
	default:
		return HebrewLabels
	}
}

func (l LabelSet) Label(status FulfillmentStatus) string {
	if label, ok := l.labels[status]; ok {
		return label
	}
	return string(status)
}

// FinalStateMessage is the sentence shown when an order has no legal transitions left.
func (l LabelSet) FinalStateMessage() string {
	return l.finalState
}

func (l LabelSet) DescribeIllegalTransition(current, target FulfillmentStatus) string {
	msg := fmt.Sprintf(l.illegal, l.Label(current), l.Label(target))
	if current.IsTerminal() {
		return l.finalState + ": " + msg
	}
	return msg
}
