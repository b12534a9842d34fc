package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return decodeSingle(dec, dst)
}

// decodeBodyLenient drops fields dst does not declare.
func decodeBodyLenient(r *http.Request, dst any) error {
	return decodeSingle(json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)), dst)
}

func decodeSingle(dec *json.Decoder, dst any) error {
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

func parseFloatParam(raw, name string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}

func writeMappedError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, code, msg := mapDomainError(err)
	logOperationFailure(r, operation, status, code, err)
	writeError(w, status, code, msg)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	logOperationFailure(r, operation, http.StatusBadRequest, "VALIDATION_ERROR", err)
	writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, operation string) {
	logOperationFailure(r, operation, http.StatusUnauthorized, unauthorizedCode, nil)
	writeError(w, http.StatusUnauthorized, unauthorizedCode, unauthorizedMessage)
}
