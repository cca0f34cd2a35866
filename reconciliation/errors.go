package reconciliation

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrNoRegionalPrice = errors.New("no price available for item in region")
	ErrInvalidWeight   = errors.New("invalid weight")
	ErrEmptyReport     = errors.New("no weight reports")
	ErrUnreadableLine  = errors.New("unreadable weight report line")
)

// ItemNotFoundError names the reported item that matched nothing in the catalog
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found: %q", e.Name)
}

func (e *ItemNotFoundError) Unwrap() error { return ErrItemNotFound }

// NoRegionalPriceError names the matched item that has no price in the region
type NoRegionalPriceError struct {
	Name   string
	ItemID string
	Region string
}

func (e *NoRegionalPriceError) Error() string {
	return fmt.Sprintf("no price available for %q in region %q", e.Name, e.Region)
}

func (e *NoRegionalPriceError) Unwrap() error { return ErrNoRegionalPrice }

// InvalidWeightError reports a non-positive or non-finite weight, or one whose cost overflows
type InvalidWeightError struct {
	Name   string
	Weight float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight %v kg for %q", e.Weight, e.Name)
}

func (e *InvalidWeightError) Unwrap() error { return ErrInvalidWeight }
