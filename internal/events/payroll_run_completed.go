package events

import "time"

const PayrollRunCompletedTopic = "lesims.payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType  string    `json:"event_type"`
	RunID      string    `json:"run_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Operator   string    `json:"operator"`
	Processed  int       `json:"processed"`
	Created    int       `json:"created"`
	Deleted    int       `json:"deleted"`
	OccurredAt time.Time `json:"occurred_at"`
}
