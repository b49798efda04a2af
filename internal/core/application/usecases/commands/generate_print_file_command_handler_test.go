package commands_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"footprint/internal/core/application/usecases/commands"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/domain/model/printfile"
	"footprint/internal/core/domain/services"
	"footprint/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sourceKey(t *testing.T, id kernel.UUID) string {
	t.Helper()
	key, err := printfile.SourceKey(id, "photo.png")
	require.NoError(t, err)
	return key
}

func TestNewGeneratePrintFileCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should accept a source key of the same order", func(t *testing.T) {
		cmd, err := commands.NewGeneratePrintFileCommand(id, sourceKey(t, id), "20x30", "glossy")

		require.NoError(t, err)
		assert.Equal(t, printfile.Size20x30, cmd.Size())
		assert.Equal(t, printfile.PaperGlossy, cmd.Paper())
	})

	t.Run("should reject a source key of another order", func(t *testing.T) {
		_, err := commands.NewGeneratePrintFileCommand(id, sourceKey(t, kernel.NewUUID()), "20x30", "glossy")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "sourceKey", errs.ParamOf(err))
	})

	t.Run("should reject path traversal", func(t *testing.T) {
		_, err := commands.NewGeneratePrintFileCommand(id, "orders/"+id.String()+"/source/../secret", "20x30", "matte")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown size and paper", func(t *testing.T) {
		_, err := commands.NewGeneratePrintFileCommand(id, sourceKey(t, id), "9x9", "velvet")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "paper")
	})
}

func TestGeneratePrintFileCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := restoreOrder(order.Printing)
	key := sourceKey(t, existing.ID())
	cmd, err := commands.NewGeneratePrintFileCommand(existing.ID(), key, "13x18", "matte")
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	storage := new(MockFileStorage)
	wantKey := "orders/" + existing.ID().String() + "/print/13x18_matte.jpg"

	mock.InOrder(
		orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		storage.On("Download", ctx, key).Return(samplePNG(t, 600, 400), nil).Once(),
		storage.On("Upload", ctx, wantKey, mock.MatchedBy(func(body []byte) bool {
			cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
			return err == nil && format == "jpeg" && cfg.Width == 2197 && cfg.Height == 1606
		}), "image/jpeg").Return(nil).Once(),
	)

	h := commands.NewGeneratePrintFileCommandHandler(orders, storage, services.NewPrintRenderer(), discardLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, wantKey, result.Key)
	assert.Equal(t, 2197, result.WidthPx)
	assert.Equal(t, 1606, result.HeightPx)
	assert.Equal(t, printfile.DPI, result.DPI)
	orders.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestGeneratePrintFileCommandHandler_Handle_RejectsOrdersPastProduction(t *testing.T) {
	ctx := t.Context()
	for _, status := range []order.FulfillmentStatus{order.ReadyToShip, order.Shipped, order.Delivered, order.Cancelled} {
		t.Run(string(status), func(t *testing.T) {
			existing := restoreOrder(status)
			cmd, _ := commands.NewGeneratePrintFileCommand(existing.ID(), sourceKey(t, existing.ID()), "13x18", "matte")

			orders := new(MockOrderRepository)
			storage := new(MockFileStorage)
			orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()

			h := commands.NewGeneratePrintFileCommandHandler(orders, storage, services.NewPrintRenderer(), discardLogger())
			_, err := h.Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, "status", errs.ParamOf(err))
			storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
		})
	}
}

func TestGeneratePrintFileCommandHandler_Handle_MissingSource(t *testing.T) {
	ctx := t.Context()
	existing := restoreOrder(order.Pending)
	key := sourceKey(t, existing.ID())
	cmd, _ := commands.NewGeneratePrintFileCommand(existing.ID(), key, "13x18", "matte")

	orders := new(MockOrderRepository)
	storage := new(MockFileStorage)
	orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	storage.On("Download", ctx, key).Return(nil, errs.NewObjectNotFoundError("file", key)).Once()

	h := commands.NewGeneratePrintFileCommandHandler(orders, storage, services.NewPrintRenderer(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGeneratePrintFileCommandHandler_Handle_OversizedSourceKeepsValidationError(t *testing.T) {
	ctx := t.Context()
	existing := restoreOrder(order.Pending)
	key := sourceKey(t, existing.ID())
	cmd, _ := commands.NewGeneratePrintFileCommand(existing.ID(), key, "13x18", "matte")

	orders := new(MockOrderRepository)
	storage := new(MockFileStorage)
	orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	storage.On("Download", ctx, key).
		Return(nil, errs.NewValueIsOutOfRangeError("source", 60<<20, 1, 50<<20)).Once()

	h := commands.NewGeneratePrintFileCommandHandler(orders, storage, services.NewPrintRenderer(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.NotErrorIs(t, err, errs.ErrPersistence)
	assert.Equal(t, "source", errs.ParamOf(err))
	assert.NotContains(t, err.Error(), "persistence")
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGeneratePrintFileCommandHandler_Handle_UndecodableSource(t *testing.T) {
	ctx := t.Context()
	existing := restoreOrder(order.Pending)
	key := sourceKey(t, existing.ID())
	cmd, _ := commands.NewGeneratePrintFileCommand(existing.ID(), key, "13x18", "matte")

	orders := new(MockOrderRepository)
	storage := new(MockFileStorage)
	orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	storage.On("Download", ctx, key).Return([]byte("not an image"), nil).Once()

	h := commands.NewGeneratePrintFileCommandHandler(orders, storage, services.NewPrintRenderer(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "source", errs.ParamOf(err))
}

func TestGeneratePrintFileCommandHandler_Handle_UploadFailure(t *testing.T) {
	ctx := t.Context()
	existing := restoreOrder(order.Pending)
	key := sourceKey(t, existing.ID())
	cmd, _ := commands.NewGeneratePrintFileCommand(existing.ID(), key, "13x18", "matte")

	orders := new(MockOrderRepository)
	storage := new(MockFileStorage)
	orders.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	storage.On("Download", ctx, key).Return(samplePNG(t, 400, 600), nil).Once()
	storage.On("Upload", ctx, mock.Anything, mock.Anything, "image/jpeg").Return(errors.New("503 slow down")).Once()

	h := commands.NewGeneratePrintFileCommandHandler(orders, storage, services.NewPrintRenderer(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPersistence)
}
