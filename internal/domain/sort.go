package domain

import "slices"

// CompareTickets orders tickets for display: higher status code first, then
// higher priority, then newer creation time.
func CompareTickets(a, b Ticket) int {
	if a.Status != b.Status {
		return int(b.Status) - int(a.Status)
	}
	if a.Priority != b.Priority {
		return b.Priority - a.Priority
	}
	return b.CreatedTimestamp.Compare(a.CreatedTimestamp)
}

// SortTickets sorts tickets in place in display order and returns the slice.
// Tickets with equal keys keep their relative order.
func SortTickets(tickets []Ticket) []Ticket {
	slices.SortStableFunc(tickets, CompareTickets)
	return tickets
}
