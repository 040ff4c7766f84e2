// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AuthorizationError GenericError
type ExistsError GenericError
type ExternalError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StateError GenericError

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e ExternalError) Error() string      { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e StateError) Error() string         { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrExternal(e error) bool      { _, ok := e.(ExternalError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrState(e error) bool         { _, ok := e.(StateError); return ok }

// common errors - keep in alphabetic order
var (
	AlreadyInitialised       = ProcessError("already initialised")
	ArrayLengthMismatch      = InvalidError("array length mismatch")
	CannotBuyOwnListing      = InvalidError("cannot buy own listing")
	CertificateFileExists    = ExistsError("certificate file already exists")
	DatabaseIsNotSet         = ProcessError("database is not set")
	DoubleTransactionAttempt = ProcessError("double transaction attempt")
	DuplicateSelector        = ExistsError("selector already routed")
	EmptyArrays              = InvalidError("arrays must not be empty")
	FeeExceedsMaximum        = InvalidError("fee exceeds maximum")
	FeePaymentFailed         = ExternalError("fee payment failed")
	FeeRecipientNotSet       = StateError("fee recipient not set")
	InitializationFailed     = ExternalError("initialization call failed")
	InsufficientBalance      = ExternalError("insufficient balance")
	InvalidAddress           = InvalidError("invalid address")
	InvalidChain             = InvalidError("invalid chain")
	InvalidCount             = InvalidError("invalid count")
	InvalidCursor            = InvalidError("invalid cursor")
	InvalidIpAddress         = InvalidError("invalid ip address")
	InvalidListingId         = InvalidError("invalid listing id")
	InvalidStructPointer     = InvalidError("invalid struct pointer")
	KeyFileExists            = ExistsError("key file already exists")
	ListingAlreadyActive     = StateError("listing already active")
	ListingNotActive         = StateError("listing not active")
	MaxBulkLimitExceeded     = InvalidError("maximum bulk limit exceeded")
	MissingParameters        = InvalidError("missing parameters")
	NFTTransferFailed        = ExternalError("token transfer failed")
	NoCodeAtTarget           = ExternalError("no facet deployed at target")
	NotApproved              = AuthorizationError("marketplace not approved")
	NotAvailableDuringStart  = ProcessError("not available during startup")
	NotAuthorized            = AuthorizationError("not authorized")
	NotInitialised           = ProcessError("not initialised")
	NotListingSeller         = AuthorizationError("not the listing seller")
	NotOwner                 = AuthorizationError("not the token owner")
	NotSeller                = AuthorizationError("not the seller")
	PaymentToSellerFailed    = ExternalError("payment to seller failed")
	RateLimiting             = ProcessError("rate limiting")
	RedundantReplace         = StateError("replace with identical routing")
	ReentrantCall            = StateError("re-entrant call")
	RemoveTargetMustBeEmpty  = InvalidError("remove must not specify a module")
	SelectorNotFound         = NotFoundError("selector not routed")
	TokenAlreadyExists       = ExistsError("token already exists")
	TokenNotFound            = NotFoundError("token not found")
	UnknownFunction          = NotFoundError("unknown function")
	ZeroPrice                = InvalidError("price must not be zero")
)
