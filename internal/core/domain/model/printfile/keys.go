package printfile

import (
	"errors"
	"fmt"
	"strings"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/pkg/errs"
)

const (
	keyRoot      = "orders"
	sourceFolder = "source"
	printFolder  = "print"
)

// SourceKey is where the customer's uploaded photo for orderID is stored:
// orders/{orderId}/source/{fileName}.
func SourceKey(orderID kernel.UUID, fileName string) (string, error) {
	if err := errors.Join(orderID.Validate(), validateSegment("fileName", fileName)); err != nil {
		return "", err
	}
	return strings.Join([]string{keyRoot, orderID.String(), sourceFolder, fileName}, "/"), nil
}

// PrintKey is where the rendered print file is stored:
// orders/{orderId}/print/{size}_{paper}.jpg.
func PrintKey(orderID kernel.UUID, spec Spec) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}
	if _, err := ParseSize(string(spec.Size)); err != nil {
		return "", err
	}
	if _, err := ParsePaper(string(spec.Paper)); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.jpg", spec.Size, spec.Paper)
	return strings.Join([]string{keyRoot, orderID.String(), printFolder, name}, "/"), nil
}

// ValidateSourceKey checks that key is a well formed source key belonging to orderID.
func ValidateSourceKey(orderID kernel.UUID, key string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("sourceKey")
	}
	prefix := keyRoot + "/" + orderID.String() + "/" + sourceFolder + "/"
	fileName, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("sourceKey", fmt.Errorf("key must start with %s", prefix))
	}
	if err := validateSegment("sourceKey", fileName); err != nil {
		return err
	}
	return nil
}

func validateSegment(param, segment string) error {
	switch {
	case segment == "":
		return errs.NewValueIsRequiredError(param)
	case segment == "." || segment == "..":
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is a relative path element", segment))
	case strings.ContainsAny(segment, "/\\"):
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q contains a path separator", segment))
	case strings.Contains(segment, ".."):
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q contains %q", segment, ".."))
	}
	return nil
}
