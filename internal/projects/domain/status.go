package domain

// Status is the workflow position of a project.
type Status string

const (
	StatusIntake             Status = "INTAKE"
	StatusAnalyzingPre       Status = "ANALYZING_PRE"
	StatusAwaitingPayment    Status = "AWAITING_PAYMENT"
	StatusPaidApproved       Status = "PAID_APPROVED"
	StatusAnalyzingQuestions Status = "ANALYZING_QUESTIONS"
	StatusAwaitingAnswers    Status = "AWAITING_ANSWERS"
	StatusAnalyzingFinal     Status = "ANALYZING_FINAL"
	StatusCompleted          Status = "COMPLETED"
	StatusAuditing           Status = "AUDITING"
	StatusAudited            Status = "AUDITED"
)

// order is the single directed path. Rank is the index in it.
var order = []Status{
	StatusIntake,
	StatusAnalyzingPre,
	StatusAwaitingPayment,
	StatusPaidApproved,
	StatusAnalyzingQuestions,
	StatusAwaitingAnswers,
	StatusAnalyzingFinal,
	StatusCompleted,
	StatusAuditing,
	StatusAudited,
}

var transitions = map[Status][]Status{
	StatusIntake:             {StatusAnalyzingPre},
	StatusAnalyzingPre:       {StatusAwaitingPayment},
	StatusAwaitingPayment:    {StatusPaidApproved},
	StatusPaidApproved:       {StatusAnalyzingQuestions},
	StatusAnalyzingQuestions: {StatusAwaitingAnswers},
	StatusAwaitingAnswers:    {StatusAnalyzingFinal},
	StatusAnalyzingFinal:     {StatusCompleted},
	StatusCompleted:          {StatusAuditing, StatusCompleted},
	StatusAuditing:           {StatusAudited},
	StatusAudited:            {StatusAudited},
}

// AllStatuses returns the states in path order.
func AllStatuses() []Status {
	return append([]Status(nil), order...)
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Rank returns the position of s on the path, or -1.
func (s Status) Rank() int {
	for i, v := range order {
		if v == s {
			return i
		}
	}
	return -1
}

// InFlight reports whether s only exists while an oracle call is outstanding.
// In-flight states are never persisted.
func (s Status) InFlight() bool {
	switch s {
	case StatusAnalyzingPre, StatusAnalyzingQuestions, StatusAnalyzingFinal, StatusAuditing:
		return true
	}
	return false
}

// Revisable reports whether the revision self-loop is available.
func (s Status) Revisable() bool {
	return s == StatusCompleted || s == StatusAudited
}

// CanTransition reports whether from → to is an edge of the state machine.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
