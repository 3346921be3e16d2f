package runtime

import "bytes"

// BootstrapControls lets a caller drive extra work through Boot/Setup before
// handing control to an interactive driver (§4.7): pump synthetic Tick
// events during Setup, or capture the first rendered frame. Bootstrap always
// runs the initial render, so ForceInitialRender adds nothing to it;
// GateUntilFirstKey is not read by Bootstrap and has no effect.
type BootstrapControls struct {
	ForceInitialRender bool
	PumpTicks          uint64
	GateUntilFirstKey  bool
	CaptureFirstFrame  *bytes.Buffer
}
