package ui

import (
	"wallestreet/export"
	"wallestreet/model"
)

// Message type aliases - orchestration messages are defined in model package
type probeResultMsg = model.ProbeResultMsg
type analysisResultMsg = model.AnalysisResultMsg

// UI-local messages for export command results
type docExportDoneMsg struct {
	Result *export.DocResult
	Err    error
}

type pdfExportDoneMsg struct {
	Path string
	Err  error
}

type clipboardDoneMsg struct {
	Err error
}

type authExchangeDoneMsg struct {
	Err error
}
