package equipment

// ===============================
// Equipment Status
// ===============================

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusBorrowed    Status = "Borrowed"
	StatusFollowUp    Status = "Follow Up"
	StatusUnderRepair Status = "Under Repair"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusFollowUp, StatusUnderRepair:
		return true
	}
	return false
}

// IsBorrowed reports whether s belongs to the borrowed family. Follow Up is
// a borrowed item whose due date is close; it still has a borrower.
func (s Status) IsBorrowed() bool {
	return s == StatusBorrowed || s == StatusFollowUp
}

func InitialStatus() Status {
	return StatusAvailable
}

// ===============================
// Transitions
// ===============================

type Action string

const (
	ActionCheckout     Action = "checkout"
	ActionCheckin      Action = "checkin"
	ActionReportRepair Action = "report_repair"
	ActionMarkRepaired Action = "mark_repaired"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
)

func CanCheckout(current Status) error {
	if current != StatusAvailable {
		return ErrInvalidTransition
	}
	return nil
}

func CanCheckin(current Status) error {
	if !current.IsBorrowed() {
		return ErrInvalidTransition
	}
	return nil
}

func CanReportRepair(current Status) error {
	if current == StatusUnderRepair || !current.Valid() {
		return ErrInvalidTransition
	}
	return nil
}

func CanMarkRepaired(current Status) error {
	if current != StatusUnderRepair {
		return ErrInvalidTransition
	}
	return nil
}

// AllowedActions is the set of operations a client may offer for an item
// in the given status, in display order.
func AllowedActions(current Status) []Action {
	var out []Action
	if CanCheckout(current) == nil {
		out = append(out, ActionCheckout)
	}
	if CanCheckin(current) == nil {
		out = append(out, ActionCheckin)
	}
	if CanReportRepair(current) == nil {
		out = append(out, ActionReportRepair)
	}
	if CanMarkRepaired(current) == nil {
		out = append(out, ActionMarkRepaired)
	}
	return append(out, ActionUpdate, ActionDelete)
}

// ===============================
// Log actions
// ===============================

type LogAction string

const (
	LogRegistered        LogAction = "Registered"
	LogBorrowed          LogAction = "Borrowed"
	LogReturned          LogAction = "Returned"
	LogReportedForRepair LogAction = "Reported for Repair"
	LogRepaired          LogAction = "Repaired"
	LogDeleted           LogAction = "Deleted"
	LogUpdated           LogAction = "Updated"
)

func (a LogAction) Valid() bool {
	switch a {
	case LogRegistered, LogBorrowed, LogReturned, LogReportedForRepair, LogRepaired, LogDeleted, LogUpdated:
		return true
	}
	return false
}
