package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	pkgerrors "cathedral-bridge/pkg/errors"

	"go.uber.org/zap"
)

// base carries what every handler needs to read requests and write responses
type base struct {
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
	maxBytes int64
}

func (b base) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondDocument writes an already serialized interchange document
func (b base) respondDocument(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		b.logger.Warn("Failed to write document", zap.Error(err))
	}
}

func (b base) respondError(w http.ResponseWriter, r *http.Request, err error) {
	b.errors.Handle(w, r, err)
}

// readBody reads the whole request body, refusing bodies over maxBytes
func (b base) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, b.maxBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			domainErr := pkgerrors.NewInvalidRequestError(
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			domainErr.StatusCode = http.StatusRequestEntityTooLarge
			return nil, domainErr
		}
		return nil, pkgerrors.NewInvalidRequestError("failed to read request body").WithCause(err)
	}
	return data, nil
}
