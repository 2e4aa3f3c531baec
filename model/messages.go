package model

import (
	"wallestreet/gateway"
)

// ProbeResultMsg reports the outcome of the backend liveness check.
type ProbeResultMsg struct {
	Err *gateway.Error
}

// AnalysisResultMsg carries the batched analysis reply or its failure.
type AnalysisResultMsg struct {
	Payload *gateway.AnalysisPayload
	Err     *gateway.Error
}
