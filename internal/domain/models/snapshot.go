package models

// Placeholder is shown wherever a referenced record no longer exists.
const Placeholder = "N/A"

// Snapshot is one consistent read of every ledger collection. Derivations only ever read it.
type Snapshot struct {
	Weavers        []Weaver        `json:"weavers"`
	Designs        []Design        `json:"designs"`
	ProductionLogs []ProductionLog `json:"productionLogs"`
	Loans          []Loan          `json:"loans"`
	Repayments     []Repayment     `json:"repayments"`
	RentalPayments []RentalPayment `json:"rentalPayments"`
}

// Weaver looks a weaver up by id.
func (s Snapshot) Weaver(id int64) (Weaver, bool) {
	for _, w := range s.Weavers {
		if w.ID == id {
			return w, true
		}
	}
	return Weaver{}, false
}

// WeaverName returns the weaver's name or the placeholder.
func (s Snapshot) WeaverName(id int64) string {
	if w, ok := s.Weaver(id); ok {
		return w.Name
	}
	return Placeholder
}

// Design looks a design up by id.
func (s Snapshot) Design(id int64) (Design, bool) {
	for _, d := range s.Designs {
		if d.ID == id {
			return d, true
		}
	}
	return Design{}, false
}

// DesignName returns the design's name or the placeholder.
func (s Snapshot) DesignName(id int64) string {
	if d, ok := s.Design(id); ok {
		return d.Name
	}
	return Placeholder
}

// Loan looks a loan up by id.
func (s Snapshot) Loan(id int64) (Loan, bool) {
	for _, l := range s.Loans {
		if l.ID == id {
			return l, true
		}
	}
	return Loan{}, false
}
