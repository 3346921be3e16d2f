package runtime

// State names a point in the coordinator's lifecycle state machine (§4.7).
type State string

const (
	StateInit  State = "Init"
	StateOpen  State = "Open"
	StateBoot  State = "Boot"
	StateSetup State = "Setup"
	StateLoop  State = "Loop"

	StateUserEnd State = "UserEnd"
	StateCleanup State = "Cleanup"
	StateEnd     State = "End"
	StateClose   State = "Close"

	StateError          State = "Error"
	StateRecoverOrFatal State = "RecoverOrFatal"
	StateFatal          State = "Fatal"
	StateFatalCleanup   State = "FatalCleanup"
	StateFatalClose     State = "FatalClose"
)

// Terminal reports whether s is one of the two terminal states (§4.7:
// "terminal states are Close and FatalClose").
func (s State) Terminal() bool {
	return s == StateClose || s == StateFatalClose
}
