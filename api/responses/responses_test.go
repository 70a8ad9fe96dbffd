package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) (string, string, any) {
	t.Helper()

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return envelope.Error.Code, envelope.Error.Message, envelope.Error.Details
}

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	resp := httptest.NewRecorder()
	WriteSuccess(resp, map[string]string{"status": "ok"})

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["status"] != "ok" {
		t.Fatalf("data = %v", envelope.Data)
	}
}

func TestWriteErrorDomainMessageSurfaces(t *testing.T) {
	t.Parallel()

	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty"))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.Code)
	}
	code, msg, _ := decodeError(t, resp)
	if code != string(pkgerrors.CodeEmptyCart) {
		t.Fatalf("code = %s", code)
	}
	if msg != "cart is empty" {
		t.Fatalf("message = %s", msg)
	}
}

func TestWriteErrorInternalStaysGeneric(t *testing.T) {
	t.Parallel()

	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: connection refused"), "query failed"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.Code)
	}
	_, msg, _ := decodeError(t, resp)
	if msg != "internal server error" {
		t.Fatalf("message leaked internals: %s", msg)
	}
}

func TestWriteErrorUncodedBecomesInternal(t *testing.T) {
	t.Parallel()

	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, errors.New("something broke"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.Code)
	}
	code, _, _ := decodeError(t, resp)
	if code != string(pkgerrors.CodeInternal) {
		t.Fatalf("code = %s", code)
	}
}

func TestWriteErrorDetailsGatedByMetadata(t *testing.T) {
	t.Parallel()

	// Field validation allows details through.
	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp,
		pkgerrors.New(pkgerrors.CodeFieldValidation, "some fields are invalid").
			WithDetails(map[string]string{"email": "must be a valid email"}))

	_, _, details := decodeError(t, resp)
	asMap, ok := details.(map[string]any)
	if !ok || asMap["email"] != "must be a valid email" {
		t.Fatalf("details = %v", details)
	}

	// Conflict does not.
	resp = httptest.NewRecorder()
	WriteError(context.Background(), nil, resp,
		pkgerrors.New(pkgerrors.CodeMembershipAlreadyActive, "an active membership already exists").
			WithDetails(map[string]string{"internal": "do not leak"}))

	_, _, details = decodeError(t, resp)
	if details != nil {
		t.Fatalf("details should be suppressed, got %v", details)
	}
}
