package relay

import "github.com/nguyentantai21042004/meeting-scribe/internal/protocol"

// User-visible texts of the non-model outcomes.
const (
	MessageEmpty  = "⚠ No transcript available to summarize."
	MessageFailed = "⚠ Failed to generate AI summary. Please check server logs or API key."
	MessageBusy   = "⚠ A summary is already being generated for this session."
)

// Result is the outcome of one stop request.
type Result struct {
	Text   string
	Status string
}

// OK reports whether Text came from the model.
func (r Result) OK() bool {
	return r.Status == protocol.StatusOK
}

// Event converts the result to its wire form.
func (r Result) Event() protocol.Event {
	return protocol.Summary(r.Text, r.Status)
}

func emptyResult() Result  { return Result{Text: MessageEmpty, Status: protocol.StatusEmpty} }
func failedResult() Result { return Result{Text: MessageFailed, Status: protocol.StatusFailed} }
func busyResult() Result   { return Result{Text: MessageBusy, Status: protocol.StatusBusy} }
