package phase

// Phase tracks how far a module has progressed through the pipeline.
//
// Progression is strictly sequential: every pass relies on the decorations
// the previous one deposited (the typechecker assumes every symbol already
// has its signature type, flow validation assumes resolved symbols, and so
// on). Transitions are validated against the Prerequisites map.
type Phase int

const (
	PhaseNotStarted       Phase = iota // AST received, nothing run
	PhaseStructureChecked              // statement placement validated
	PhaseCollected                     // scopes and symbols created
	PhaseResolved                      // signature types computed
	PhaseTypeChecked                   // expression types computed
	PhaseFlowValidated                 // returns and dead code validated
	PhaseInitialised                   // default initialisers filled in
	PhaseRenamed                       // optional symbol renaming done
)

// Prerequisites maps each phase to the phase that must precede it. The
// explicit mapping keeps the ordering auditable in one place.
var Prerequisites = map[Phase]Phase{
	PhaseStructureChecked: PhaseNotStarted,
	PhaseCollected:        PhaseStructureChecked,
	PhaseResolved:         PhaseCollected,
	PhaseTypeChecked:      PhaseResolved,
	PhaseFlowValidated:    PhaseTypeChecked,
	PhaseInitialised:      PhaseFlowValidated,
	PhaseRenamed:          PhaseInitialised,
}

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseStructureChecked:
		return "StructureChecked"
	case PhaseCollected:
		return "Collected"
	case PhaseResolved:
		return "Resolved"
	case PhaseTypeChecked:
		return "TypeChecked"
	case PhaseFlowValidated:
		return "FlowValidated"
	case PhaseInitialised:
		return "Initialised"
	case PhaseRenamed:
		return "Renamed"
	default:
		return "Unknown"
	}
}
