package model

// ChangeEvent is published after a command's snapshot has been persisted.
type ChangeEvent struct {
	Command   string `json:"command"`
	Timestamp int64  `json:"timestamp"`
}
