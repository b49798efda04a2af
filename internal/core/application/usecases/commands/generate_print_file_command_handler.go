package commands

import (
	"context"
	"fmt"
	"log/slog"

	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/domain/model/printfile"
	"footprint/internal/core/domain/services"
	"footprint/internal/core/ports"
	"footprint/internal/pkg/errs"
)

// GeneratePrintFileResult locates the uploaded print file.
type GeneratePrintFileResult struct {
	Key      string
	WidthPx  int
	HeightPx int
	DPI      int
}

// GeneratePrintFileCommandHandler renders a print file and stores it next to the
// order's source photo. Files can be (re)generated while the order is pending or
// printing; later statuses are already past production.
type GeneratePrintFileCommandHandler struct {
	orders   ports.OrderRepository
	storage  ports.FileStorage
	renderer services.PrintRenderer
	logger   *slog.Logger
}

func NewGeneratePrintFileCommandHandler(
	orders ports.OrderRepository,
	storage ports.FileStorage,
	renderer services.PrintRenderer,
	logger *slog.Logger,
) GeneratePrintFileCommandHandler {
	return GeneratePrintFileCommandHandler{
		orders:   orders,
		storage:  storage,
		renderer: renderer,
		logger:   logger.With("component", "generate_print_file"),
	}
}

func (h *GeneratePrintFileCommandHandler) Handle(
	ctx context.Context,
	cmd GeneratePrintFileCommand,
) (GeneratePrintFileResult, error) {
	if err := cmd.Validate(); err != nil {
		return GeneratePrintFileResult{}, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return GeneratePrintFileResult{}, storeError("fetch order", err)
	}
	if s := aggregate.Status(); s != order.Pending && s != order.Printing {
		return GeneratePrintFileResult{}, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("print files are generated for pending or printing orders, order is %s", s))
	}

	source, err := h.storage.Download(ctx, cmd.SourceKey())
	if err != nil {
		return GeneratePrintFileResult{}, storeError("download source image", err)
	}

	rendered, err := h.renderer.Render(source, cmd.Size(), cmd.Paper())
	if err != nil {
		return GeneratePrintFileResult{}, err
	}

	key, err := printfile.PrintKey(cmd.OrderID(), rendered.Spec)
	if err != nil {
		return GeneratePrintFileResult{}, err
	}

	if err = h.storage.Upload(ctx, key, rendered.Data, "image/jpeg"); err != nil {
		return GeneratePrintFileResult{}, storeError("upload print file", err)
	}

	h.logger.InfoContext(ctx, "Print file generated",
		"order_id", cmd.OrderID().String(),
		"key", key,
		"width_px", rendered.Width,
		"height_px", rendered.Height,
		"bytes", len(rendered.Data),
	)

	return GeneratePrintFileResult{
		Key:      key,
		WidthPx:  rendered.Width,
		HeightPx: rendered.Height,
		DPI:      printfile.DPI,
	}, nil
}
