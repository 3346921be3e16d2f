package runtime

import "github.com/oodx/room/audit"

// These re-export the audit stage vocabulary so the rest of this package can
// name a stage without qualifying every call site with audit.*.
const (
	Open  = audit.Open
	Boot  = audit.Boot
	Setup = audit.Setup

	UserReady = audit.UserReady

	LoopIn  = audit.LoopIn
	LoopOut = audit.LoopOut

	UserEnd = audit.UserEnd
	Cleanup = audit.Cleanup
	End     = audit.End
	Close   = audit.Close

	Error          = audit.Error
	RecoverOrFatal = audit.RecoverOrFatal
	Fatal          = audit.Fatal
	FatalCleanup   = audit.FatalCleanup
	FatalClose     = audit.FatalClose

	LoopGuardTriggered = audit.LoopGuardTriggered
	LoopAborted        = audit.LoopAborted

	LoopSimulated         = audit.LoopSimulated
	LoopSimulatedAborted  = audit.LoopSimulatedAborted
	LoopSimulatedComplete = audit.LoopSimulatedComplete

	FocusChanged = audit.FocusChanged

	CursorMoved  = audit.CursorMoved
	CursorShown  = audit.CursorShown
	CursorHidden = audit.CursorHidden
)
