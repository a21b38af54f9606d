package judge

import (
	"encoding/json"
	"io"
	"sync"
)

// Message is a formatted feedback message.
type Message struct {
	Format      string `json:"format"`
	Description string `json:"description"`
}

// TextMessage creates a plain text message.
func TextMessage(s string) Message {
	return Message{Format: "text", Description: s}
}

// CodeMessage creates an SQL code message.
func CodeMessage(s string) Message {
	return Message{Format: "sql", Description: s}
}

type record struct {
	Command     string   `json:"command"`
	Title       string   `json:"title,omitempty"`
	Hidden      *bool    `json:"hidden,omitempty"`
	Expected    *string  `json:"expected,omitempty"`
	Generated   *string  `json:"generated,omitempty"`
	Description *Message `json:"description,omitempty"`
	Message     *Message `json:"message,omitempty"`
	Status      *Status  `json:"status,omitempty"`
	Accepted    *bool    `json:"accepted,omitempty"`
}

// Reporter writes feedback records as JSON lines.
//
// The first write error is kept and returned by Err, later records are discarded.
type Reporter struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return &Reporter{enc: enc}
}

// Err returns the first write error.
func (r *Reporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

func (r *Reporter) write(rec record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}

	r.err = r.enc.Encode(rec)
}

// StartJudgement opens the judgement.
func (r *Reporter) StartJudgement() {
	r.write(record{Command: "start-judgement"})
}

// CloseJudgement closes the judgement, status is omitted when nil.
func (r *Reporter) CloseJudgement(accepted bool, status *Status) {
	r.write(record{Command: "close-judgement", Accepted: &accepted, Status: status})
}

// StartTab opens a tab.
func (r *Reporter) StartTab(title string, hidden bool) {
	r.write(record{Command: "start-tab", Title: title, Hidden: &hidden})
}

// CloseTab closes current tab.
func (r *Reporter) CloseTab() {
	r.write(record{Command: "close-tab"})
}

// StartContext opens a context.
func (r *Reporter) StartContext() {
	r.write(record{Command: "start-context"})
}

// CloseContext closes current context.
func (r *Reporter) CloseContext(accepted bool) {
	r.write(record{Command: "close-context", Accepted: &accepted})
}

// StartTestcase opens a testcase.
func (r *Reporter) StartTestcase(description Message) {
	r.write(record{Command: "start-testcase", Description: &description})
}

// CloseTestcase closes current testcase.
func (r *Reporter) CloseTestcase(accepted bool) {
	r.write(record{Command: "close-testcase", Accepted: &accepted})
}

// StartTest opens a test with expected output.
func (r *Reporter) StartTest(description, expected string) {
	d := TextMessage(description)
	r.write(record{Command: "start-test", Description: &d, Expected: &expected})
}

// CloseTest closes current test with generated output.
func (r *Reporter) CloseTest(generated string, status Status) {
	r.write(record{Command: "close-test", Generated: &generated, Status: &status})
}

// AppendMessage adds a message to the current feedback level.
func (r *Reporter) AppendMessage(m Message) {
	r.write(record{Command: "append-message", Message: &m})
}

// EscalateStatus raises status of the judgement.
func (r *Reporter) EscalateStatus(status Status) {
	r.write(record{Command: "escalate-status", Status: &status})
}
