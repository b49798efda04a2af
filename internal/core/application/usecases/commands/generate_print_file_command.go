package commands

import (
	"errors"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/printfile"
	"footprint/internal/pkg/guard"
)

var ErrGeneratePrintFileCommandIsNotConstructed = errors.New(
	"GeneratePrintFileCommand must be created via NewGeneratePrintFileCommand constructor",
)

// GeneratePrintFileCommand asks to render the production file for an order from
// the customer's uploaded photo.
type GeneratePrintFileCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	sourceKey string
	size      printfile.Size
	paper     printfile.Paper

	guard guard.ConstructorGuard
}

func NewGeneratePrintFileCommand(orderID kernel.UUID, sourceKey, size, paper string) (GeneratePrintFileCommand, error) {
	cmd := GeneratePrintFileCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return GeneratePrintFileCommand{}, err
	}
	cmd.orderID = orderID

	parsedSize, sizeErr := printfile.ParseSize(size)
	parsedPaper, paperErr := printfile.ParsePaper(paper)
	if err := errors.Join(
		printfile.ValidateSourceKey(orderID, sourceKey),
		sizeErr,
		paperErr,
	); err != nil {
		return GeneratePrintFileCommand{}, err
	}

	cmd.sourceKey = sourceKey
	cmd.size = parsedSize
	cmd.paper = parsedPaper
	return cmd, nil
}

func (c GeneratePrintFileCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePrintFileCommandIsNotConstructed)
}

func (c GeneratePrintFileCommand) OrderID() kernel.UUID   { return c.orderID }
func (c GeneratePrintFileCommand) SourceKey() string      { return c.sourceKey }
func (c GeneratePrintFileCommand) Size() printfile.Size   { return c.size }
func (c GeneratePrintFileCommand) Paper() printfile.Paper { return c.paper }
