package problemdetails

import "fmt"

const (
	TypeInvalidRequest = "invalid-request"
	TypeInvalidURL     = "invalid-url"
	TypeInvalidAlias   = "invalid-alias"
	TypeAliasTaken     = "alias-taken"
	TypeUnauthorized   = "unauthorized"
	TypeForbidden      = "forbidden"
	TypeNotFound       = "not-found"
	TypeUsernameTaken  = "username-taken"
	TypeInternalError  = "internal-error"
)

// ProblemDetail is an RFC 7807 error payload.
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://api.example.com/problems/%s", problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}
