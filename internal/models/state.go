package models

// IncidentState - состояние инцидента
type IncidentState string

const (
	StateReported          IncidentState = "reported"
	StateTriaged           IncidentState = "triaged"
	StateDispatching       IncidentState = "dispatching"
	StateResponderAssigned IncidentState = "responder_assigned"
	StateEnRoute           IncidentState = "en_route"
	StateArrived           IncidentState = "arrived"
	StateResolved          IncidentState = "resolved"
	StateCancelled         IncidentState = "cancelled"
	StateExpired           IncidentState = "expired"
)

var transitions = map[IncidentState]map[IncidentState]bool{
	StateReported:          {StateTriaged: true, StateCancelled: true},
	StateTriaged:           {StateDispatching: true, StateCancelled: true},
	StateDispatching:       {StateResponderAssigned: true, StateExpired: true, StateCancelled: true},
	StateResponderAssigned: {StateEnRoute: true, StateCancelled: true},
	StateEnRoute:           {StateArrived: true, StateCancelled: true},
	StateArrived:           {StateResolved: true},
	StateResolved:          {},
	StateCancelled:         {},
	StateExpired:           {},
}

// progress - порядок "продвинутости" для активных состояний
var progress = map[IncidentState]int{
	StateReported:          0,
	StateTriaged:           1,
	StateDispatching:       2,
	StateResponderAssigned: 3,
	StateEnRoute:           4,
	StateArrived:           5,
}

// CanTransition проверяет ребро графа состояний
func CanTransition(from, to IncidentState) bool {
	return transitions[from][to]
}

// IsTerminal - Resolved, Cancelled и Expired
func (s IncidentState) IsTerminal() bool {
	switch s {
	case StateResolved, StateCancelled, StateExpired:
		return true
	}
	return false
}

// Valid проверяет, что состояние известно
func (s IncidentState) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Before сообщает, что s менее продвинуто, чем other (только для нетерминальных состояний)
func (s IncidentState) Before(other IncidentState) bool {
	a, okA := progress[s]
	b, okB := progress[other]
	return okA && okB && a < b
}

// Next возвращает следующее состояние по основной цепочке, если оно есть
func (s IncidentState) Next() (IncidentState, bool) {
	switch s {
	case StateReported:
		return StateTriaged, true
	case StateTriaged:
		return StateDispatching, true
	case StateDispatching:
		return StateResponderAssigned, true
	case StateResponderAssigned:
		return StateEnRoute, true
	case StateEnRoute:
		return StateArrived, true
	case StateArrived:
		return StateResolved, true
	}
	return "", false
}
