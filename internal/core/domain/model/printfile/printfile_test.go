package printfile_test

import (
	"fmt"
	"testing"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/printfile"
	"footprint/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Pixels(t *testing.T) {
	testCases := []struct {
		size          printfile.Size
		paper         printfile.Paper
		width, height int
	}{
		{printfile.Size13x18, printfile.PaperMatte, 1606, 2197},
		{printfile.Size20x30, printfile.PaperGlossy, 2433, 3614},
		{printfile.Size30x40, printfile.PaperFineArt, 3614, 4795},
		{printfile.Size40x60, printfile.PaperMatte, 4795, 7157},
		{printfile.Size50x70, printfile.PaperGlossy, 5976, 8339},
		{printfile.Size13x18, printfile.PaperCanvas, 2244, 2835},
		{printfile.Size50x70, printfile.PaperCanvas, 6614, 8976},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s on %s", tc.size, tc.paper), func(t *testing.T) {
			w, h := printfile.Spec{Size: tc.size, Paper: tc.paper}.Pixels()
			assert.Equal(t, tc.width, w)
			assert.Equal(t, tc.height, h)

			lw, lh := printfile.Spec{Size: tc.size, Paper: tc.paper, Landscape: true}.Pixels()
			assert.Equal(t, tc.height, lw)
			assert.Equal(t, tc.width, lh)
		})
	}
}

func TestSpec_PixelsCoverEveryCombination(t *testing.T) {
	for _, size := range printfile.Sizes() {
		for _, paper := range printfile.Papers() {
			w, h := printfile.Spec{Size: size, Paper: paper}.Pixels()
			short, long := size.CM()

			assert.Less(t, w, h, "%s/%s", size, paper)
			assert.GreaterOrEqual(t, w, printfile.PixelsForEdge(short, 0))
			assert.GreaterOrEqual(t, h, printfile.PixelsForEdge(long, 0))
		}
	}
}

func TestParse(t *testing.T) {
	size, err := printfile.ParseSize("30x40")
	require.NoError(t, err)
	assert.Equal(t, printfile.Size30x40, size)

	_, err = printfile.ParseSize("10x10")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "size", errs.ParamOf(err))

	paper, err := printfile.ParsePaper("fine_art")
	require.NoError(t, err)
	assert.Equal(t, 3, paper.BleedMM())

	_, err = printfile.ParsePaper("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestKeys(t *testing.T) {
	orderID, _ := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

	t.Run("should build source key", func(t *testing.T) {
		key, err := printfile.SourceKey(orderID, "photo.png")

		require.NoError(t, err)
		assert.Equal(t, "orders/550e8400-e29b-41d4-a716-446655440000/source/photo.png", key)
		require.NoError(t, printfile.ValidateSourceKey(orderID, key))
	})

	t.Run("should build print key", func(t *testing.T) {
		key, err := printfile.PrintKey(orderID, printfile.Spec{Size: printfile.Size20x30, Paper: printfile.PaperCanvas})

		require.NoError(t, err)
		assert.Equal(t, "orders/550e8400-e29b-41d4-a716-446655440000/print/20x30_canvas.jpg", key)
	})

	t.Run("should reject traversal in file names", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "../x.png", "a/b.png", `a\b.png`, "x..png"} {
			_, err := printfile.SourceKey(orderID, name)
			assert.True(t, errs.IsValidation(err), name)
		}
	})

	t.Run("should reject keys of another order", func(t *testing.T) {
		other := kernel.NewUUID()
		key, _ := printfile.SourceKey(other, "photo.png")

		err := printfile.ValidateSourceKey(orderID, key)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject nested source keys", func(t *testing.T) {
		err := printfile.ValidateSourceKey(orderID, "orders/550e8400-e29b-41d4-a716-446655440000/source/../print/x.jpg")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown print spec", func(t *testing.T) {
		_, err := printfile.PrintKey(orderID, printfile.Spec{Size: "1x1", Paper: printfile.PaperMatte})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
