package service

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidProduct   = errors.New("product invalid")
	ErrInvalidQuantity  = errors.New("quantity invalid")
	ErrInvalidUser      = errors.New("user id invalid")
	ErrItemNotOwned     = errors.New("item not owned by requester")
	ErrProductNotListed = errors.New("product not available")
)
