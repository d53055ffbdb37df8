package domain

import "errors"

var ErrContractNotFound = errors.New("contract not found")
var ErrItemNotFound = errors.New("item not found")
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrUserExists = errors.New("user already exists")
var ErrRoleExists = errors.New("role already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotAuthorized is returned when the change policy denies a mutation.
var ErrNotAuthorized = errors.New("not authorized to make this change")

// ErrNotContractParty is returned when the acting user is neither the lender
// nor the rentee of the contract being mutated.
var ErrNotContractParty = errors.New("only the lender or rentee may change this contract")
