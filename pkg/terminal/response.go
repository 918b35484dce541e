package terminal

// Kind tags how the client should render and act on a server reply.
type Kind string

const (
	KindText      Kind = "text"
	KindDownload  Kind = "download"
	KindClear     Kind = "clear"
	KindChatStart Kind = "chat_start"
	KindChatEnd   Kind = "chat_end"
	KindAI        Kind = "ai"
	KindError     Kind = "error"
)

// IsValid reports whether k is one of the known response kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindDownload, KindClear, KindChatStart, KindChatEnd, KindAI, KindError:
		return true
	}
	return false
}

// Response is the typed reply for every terminal interaction. Exactly one
// kind per response. URL is set only for downloads, SessionID only when a
// chat session is allocated or echoed back.
type Response struct {
	Kind      Kind   `json:"kind"`
	Output    string `json:"output"`
	URL       string `json:"url,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

func Text(output string) Response {
	return Response{Kind: KindText, Output: output}
}

func Download(output, url string) Response {
	return Response{Kind: KindDownload, Output: output, URL: url}
}

func Clear() Response {
	return Response{Kind: KindClear}
}

func ChatStart(output, sessionID string) Response {
	return Response{Kind: KindChatStart, Output: output, SessionID: sessionID}
}

func ChatEnd(output string) Response {
	return Response{Kind: KindChatEnd, Output: output}
}

func AI(output, sessionID string) Response {
	return Response{Kind: KindAI, Output: output, SessionID: sessionID}
}

func Error(output string) Response {
	return Response{Kind: KindError, Output: output}
}
