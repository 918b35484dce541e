package dto

// CommandRequest is the POST /command body.
type CommandRequest struct {
	Command string `json:"command"`
}
