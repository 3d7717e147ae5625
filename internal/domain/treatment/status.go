package treatment

import "strings"

// ===============================
// Treatment Status
// ===============================

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusVisited   Status = "VISITED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
	StatusCompleted Status = "COMPLETED"
)

var AllStatuses = []Status{
	StatusReserved,
	StatusVisited,
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "CARD"
	PaymentCash   PaymentMethod = "CASH"
	PaymentUnpaid PaymentMethod = "UNPAID"
)

var AllPaymentMethods = []PaymentMethod{PaymentCard, PaymentCash, PaymentUnpaid}

// ===============================
// Parsing
// ===============================

func ParseStatus(v string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	for _, known := range AllStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

func ParsePaymentMethod(v string) (PaymentMethod, bool) {
	p := PaymentMethod(strings.ToUpper(strings.TrimSpace(v)))
	for _, known := range AllPaymentMethods {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// ===============================
// Classification
// ===============================

// IsPaid reports whether money was actually collected with this method.
func IsPaid(m PaymentMethod) bool {
	return m == PaymentCard || m == PaymentCash
}

// InExpectedSales reports whether a booking in this status still counts toward expected revenue.
func InExpectedSales(s Status) bool {
	switch s {
	case StatusReserved, StatusVisited, StatusCompleted:
		return true
	}
	return false
}

// IsUnfinished reports whether the completion job may promote a booking in this status.
func IsUnfinished(s Status) bool {
	return s == StatusReserved || s == StatusVisited
}

func UnfinishedStatuses() []string {
	return []string{string(StatusReserved), string(StatusVisited)}
}

// IsActualSale is a completed booking settled by card or cash.
func IsActualSale(s Status, m PaymentMethod) bool {
	return s == StatusCompleted && IsPaid(m)
}

// IsUnpaidSale is a completed booking that was never settled.
func IsUnpaidSale(s Status, m PaymentMethod) bool {
	return s == StatusCompleted && m == PaymentUnpaid
}
