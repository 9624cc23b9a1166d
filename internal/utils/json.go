package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	errs "bizchess/internal/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSONRequest decodes a single JSON document from the request body.
// Unknown fields, trailing data and bodies over 1 MiB are rejected with
// ErrInvalidRequest.
func DecodeJSONRequest(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes+1))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errs.ErrInvalidRequest)
		}
		return fmt.Errorf("%w: invalid JSON: %v", errs.ErrInvalidRequest, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: trailing data after JSON body", errs.ErrInvalidRequest)
	}
	return nil
}
