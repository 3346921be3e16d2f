package audit

// Stage names a point in the runtime's lifecycle or per-event bookend at
// which an audit record is emitted (spec §4.4, §4.7).
type Stage string

const (
	Open  Stage = "Open"
	Boot  Stage = "Boot"
	Setup Stage = "Setup"

	UserReady Stage = "UserReady"

	LoopIn  Stage = "LoopIn"
	LoopOut Stage = "LoopOut"

	UserEnd Stage = "UserEnd"
	Cleanup Stage = "Cleanup"
	End     Stage = "End"
	Close   Stage = "Close"

	Error          Stage = "Error"
	RecoverOrFatal Stage = "RecoverOrFatal"
	Fatal          Stage = "Fatal"
	FatalCleanup   Stage = "FatalCleanup"
	FatalClose     Stage = "FatalClose"

	LoopGuardTriggered Stage = "LoopGuardTriggered"
	LoopAborted        Stage = "LoopAborted"

	LoopSimulated        Stage = "LoopSimulated"
	LoopSimulatedAborted Stage = "LoopSimulatedAborted"
	LoopSimulatedComplete Stage = "LoopSimulatedComplete"

	FocusChanged Stage = "FocusChanged"

	CursorMoved  Stage = "CursorMoved"
	CursorShown  Stage = "CursorShown"
	CursorHidden Stage = "CursorHidden"
)
