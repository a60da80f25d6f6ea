package commands

import (
	"context"
	"fmt"

	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/ports"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"

	"go.uber.org/zap"
)

// StoreDocumentCommand imports a serialized document and stores it under Name.
// The payload is validated in full before anything is written.
type StoreDocumentCommand struct {
	Name    string `json:"name"`
	Payload []byte `json:"-"`
}

// Validate validates the command
func (c StoreDocumentCommand) Validate() error {
	if _, err := valueobjects.NewDocumentName(c.Name); err != nil {
		return err
	}
	if len(c.Payload) == 0 {
		return pkgerrors.NewInvalidRequestError("document payload is required")
	}
	return nil
}

// StoreDocumentHandler handles the StoreDocumentCommand
type StoreDocumentHandler struct {
	manager *services.ExportManager
	store   ports.DocumentStore
	logger  *zap.Logger
}

// NewStoreDocumentHandler creates a new handler instance
func NewStoreDocumentHandler(manager *services.ExportManager, store ports.DocumentStore, logger *zap.Logger) *StoreDocumentHandler {
	return &StoreDocumentHandler{
		manager: manager,
		store:   store,
		logger:  logger,
	}
}

// Handle imports the payload and re-exports it to the store
func (h *StoreDocumentHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(StoreDocumentCommand)
	if !ok {
		return fmt.Errorf("%w: %T", bus.ErrUnexpectedType, c)
	}
	name, err := valueobjects.NewDocumentName(cmd.Name)
	if err != nil {
		return err
	}

	bundle, err := h.manager.ImportFrom(ctx, services.NewPayloadSource(cmd.Payload, "request:"+name.String()))
	if err != nil {
		return err
	}

	if err := h.manager.ExportTo(ctx, h.store.Sink(name.String()), bundle); err != nil {
		return err
	}

	h.logger.Debug("Stored document", zap.String("name", name.String()))
	return nil
}
