package service

import "errors"

var (
	ErrDriveNotConfigured  = errors.New("google drive is not configured")
	ErrSenderNotConfigured = errors.New("message sender is not configured")
	ErrEmptyImport         = errors.New("price list produced no catalog items")
	ErrNoPriceList         = errors.New("no price list found in folder")
	ErrRegionRequired      = errors.New("region is required")
	ErrUnknownRegion       = errors.New("unknown region")
	ErrPhoneRequired       = errors.New("phone is required")
)
