package icontact

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed call
type Kind int

const (
	// KindUnknownError covers statuses with no dedicated kind and local
	// parameter encoding failures.
	KindUnknownError Kind = iota
	// KindNoData means the body was not JSON, or a 200 response lacked the
	// resource's envelope key.
	KindNoData
	KindBadRequest
	KindNotAuthorized
	KindPaymentRequired
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindNotAcceptable
	KindUnsupportedMediaType
	KindInternalServerError
	KindNotImplementedByServer
	// KindServiceUnavailable is only returned once the 503 retries are used up
	KindServiceUnavailable
	KindInsufficientSpace
)

var kindNames = map[Kind]string{
	KindUnknownError:           "UnknownError",
	KindNoData:                 "NoData",
	KindBadRequest:             "BadRequest",
	KindNotAuthorized:          "NotAuthorized",
	KindPaymentRequired:        "PaymentRequired",
	KindForbidden:              "Forbidden",
	KindNotFound:               "NotFound",
	KindMethodNotAllowed:       "MethodNotAllowed",
	KindNotAcceptable:          "NotAcceptable",
	KindUnsupportedMediaType:   "UnsupportedMediaType",
	KindInternalServerError:    "InternalServerError",
	KindNotImplementedByServer: "NotImplementedByServer",
	KindServiceUnavailable:     "ServiceUnavailable",
	KindInsufficientSpace:      "InsufficientSpace",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var statusKinds = map[int]Kind{
	http.StatusBadRequest:           KindBadRequest,
	http.StatusUnauthorized:         KindNotAuthorized,
	http.StatusPaymentRequired:      KindPaymentRequired,
	http.StatusForbidden:            KindForbidden,
	http.StatusNotFound:             KindNotFound,
	http.StatusMethodNotAllowed:     KindMethodNotAllowed,
	http.StatusNotAcceptable:        KindNotAcceptable,
	http.StatusUnsupportedMediaType: KindUnsupportedMediaType,
	http.StatusInternalServerError:  KindInternalServerError,
	http.StatusNotImplemented:       KindNotImplementedByServer,
	http.StatusServiceUnavailable:   KindServiceUnavailable,
	http.StatusInsufficientStorage:  KindInsufficientSpace,
}

// KindForStatus maps a non-200 HTTP status to its error kind
func KindForStatus(statusCode int) Kind {
	if k, ok := statusKinds[statusCode]; ok {
		return k
	}
	return KindUnknownError
}

// Sentinel errors for errors.Is() checks, one per kind
var (
	ErrUnknownError           = errors.New("unknown error")
	ErrNoData                 = errors.New("no expected data in response")
	ErrBadRequest             = errors.New("bad request")
	ErrNotAuthorized          = errors.New("not authorized")
	ErrPaymentRequired        = errors.New("payment required")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrMethodNotAllowed       = errors.New("method not allowed")
	ErrNotAcceptable          = errors.New("not acceptable")
	ErrUnsupportedMediaType   = errors.New("unsupported media type")
	ErrInternalServerError    = errors.New("internal server error")
	ErrNotImplementedByServer = errors.New("not implemented by server")
	ErrServiceUnavailable     = errors.New("service unavailable")
	ErrInsufficientSpace      = errors.New("insufficient space")
)

var kindSentinels = map[Kind]error{
	KindUnknownError:           ErrUnknownError,
	KindNoData:                 ErrNoData,
	KindBadRequest:             ErrBadRequest,
	KindNotAuthorized:          ErrNotAuthorized,
	KindPaymentRequired:        ErrPaymentRequired,
	KindForbidden:              ErrForbidden,
	KindNotFound:               ErrNotFound,
	KindMethodNotAllowed:       ErrMethodNotAllowed,
	KindNotAcceptable:          ErrNotAcceptable,
	KindUnsupportedMediaType:   ErrUnsupportedMediaType,
	KindInternalServerError:    ErrInternalServerError,
	KindNotImplementedByServer: ErrNotImplementedByServer,
	KindServiceUnavailable:     ErrServiceUnavailable,
	KindInsufficientSpace:      ErrInsufficientSpace,
}

// Error is a failed iContact call. Fields are set once by the client and
// never modified afterwards.
type Error struct {
	Kind Kind
	// StatusCode is zero for failures that happened before a response was read
	StatusCode int
	Method     string
	URL        string
	// Body is the decoded JSON response, nil when unavailable
	Body interface{}
	// Message replaces the default description when set
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	var b strings.Builder
	if e.URL != "" {
		fmt.Fprintf(&b, "%s call to: '%s' failed.", e.Method, e.URL)
	}
	if e.Body != nil {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "Error: %s", e.Detail())
	}
	if b.Len() == 0 {
		return e.Kind.String()
	}
	return b.String()
}

// Detail returns the first entry of the response's "errors" array, or
// "Unknown" when the body carries none.
func (e *Error) Detail() string {
	body, ok := e.Body.(map[string]interface{})
	if !ok {
		return "Unknown"
	}
	errs, ok := body["errors"].([]interface{})
	if !ok || len(errs) == 0 || errs[0] == nil {
		return "Unknown"
	}
	if s, ok := errs[0].(string); ok {
		return s
	}
	return fmt.Sprint(errs[0])
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf returns the kind of the *Error wrapped in err
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindUnknownError, false
}
