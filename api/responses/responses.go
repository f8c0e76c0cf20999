package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

type successEnvelope struct {
	Data any `json:"data"`
}

// apiError is the public shape of a failure; details only appear for codes
// that allow them.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

var exposeDiagnostics atomic.Bool

// ExposeDiagnostics controls whether server-side failures carry the raw cause
// text in details.cause. It is enabled outside production.
func ExposeDiagnostics(enabled bool) {
	exposeDiagnostics.Store(enabled)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if m := typed.Message(); meta.ExposeMessage && m != "" {
		msg = m
	}

	payload := errorEnvelope{
		Error: apiError{
			Code:    string(typed.Code()),
			Message: msg,
		},
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}
	if meta.HTTPStatus >= http.StatusInternalServerError && exposeDiagnostics.Load() {
		cause := err
		if inner := typed.Unwrap(); inner != nil {
			cause = inner
		}
		payload.Error.Details = withCause(payload.Error.Details, cause)
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
			"error_root":  dump.Root,
		}
		if dump.PG != nil {
			fields["pg"] = dump.PG
		}
		if step := stepOf(dump.Details); step != "" {
			fields["step"] = step
		}

		ctx = logg.WithFields(ctx, fields)
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func withCause(details any, cause error) map[string]any {
	merged := map[string]any{}
	switch typed := details.(type) {
	case map[string]any:
		for k, v := range typed {
			merged[k] = v
		}
	case map[string]string:
		for k, v := range typed {
			merged[k] = v
		}
	case nil:
	default:
		merged["details"] = typed
	}
	merged["cause"] = cause.Error()
	return merged
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}

func stepOf(details any) string {
	switch typed := details.(type) {
	case map[string]any:
		if step, ok := typed["step"].(string); ok {
			return step
		}
	case map[string]string:
		return typed["step"]
	}
	return ""
}
