// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type CapacityError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type StorageError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	BatchInUse                   = ProcessError("batch already in use")
	BatchNotInUse                = ProcessError("batch not in use")
	BufferTooShort               = RecordError("buffer too short")
	CapacityExceeded             = CapacityError("ledger capacity exceeded")
	CapacityReduction            = InvalidError("capacity cannot be reduced")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConfigurationNotTable        = InvalidError("configuration did not return a table")
	ConnectionLimitReached       = ProcessError("connection limit reached")
	CryptoFailed                 = ProcessError("encryption failed")
	DatabaseIsInconsistent       = StorageError("database is inconsistent")
	DatabaseIsNotSet             = StorageError("database is not set")
	EmptyToken                   = InvalidError("empty token")
	IdentityNameAlreadyExists    = ExistsError("identity name already exists")
	IdentityNameNotFound         = NotFoundError("identity name not found")
	IncompatibleOptions          = InvalidError("incompatible options")
	InvalidChain                 = InvalidError("invalid chain")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIPAddress             = InvalidError("invalid IP address")
	InvalidKeyLength             = InvalidError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidPasswordLength        = InvalidError("invalid password length")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidSalt                  = InvalidError("invalid salt")
	InvalidSeedHeader            = InvalidError("invalid seed header")
	InvalidSeedLength            = InvalidError("invalid seed length")
	InvalidSignature             = InvalidError("invalid signature")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	KeywordNotUTF8               = InvalidError("keyword is not valid UTF-8")
	KeywordTooLong               = LengthError("keyword too long")
	LayoutMismatch               = StorageError("storage layout does not match configuration")
	MessageNotUTF8               = InvalidError("message is not valid UTF-8")
	MessageTooLong               = LengthError("message too long")
	MissingParameters            = InvalidError("missing parameters")
	NotAnAccount                 = RecordError("not an account")
	NotConnected                 = ProcessError("not connected")
	NotInitialised               = NotFoundError("not initialised")
	NotPrivateKey                = InvalidError("identity has no private key")
	NotTransferPack              = RecordError("not a transfer pack")
	PasswordMismatch             = InvalidError("password mismatch")
	RateLimiting                 = ProcessError("rate limiting")
	ReplayedRequest              = AuthorisationError("request has already been recorded")
	SignatureTooLong             = InvalidError("signature too long")
	StorageFault                 = StorageError("storage fault")
	TokenTooLong                 = InvalidError("token too long")
	TooManyTokens                = InvalidError("too many tokens")
	Unauthorized                 = AuthorisationError("sender is not authorized")
	UnknownCommand               = InvalidError("unknown command")
	UnknownRecord                = RecordError("unknown record")
	WrongChecksum                = InvalidError("wrong checksum")
	WrongNetworkForPublicKey     = InvalidError("wrong network for public key")
	WrongPassword                = InvalidError("wrong password")
	ZeroAddress                  = InvalidError("zero address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e CapacityError) Error() string      { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e LengthError) Error() string        { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RecordError) Error() string        { return string(e) }
func (e StorageError) Error() string       { return string(e) }

// IsErrUnauthorized - the caller could not prove it is the sender
func IsErrUnauthorized(e error) bool { _, ok := e.(AuthorisationError); return ok }

// IsErrCapacity - no further records fit in the store
func IsErrCapacity(e error) bool { _, ok := e.(CapacityError); return ok }

// IsErrFieldTooLong - a field exceeded its byte budget
func IsErrFieldTooLong(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrStorage - underlying persistence failed
func IsErrStorage(e error) bool { _, ok := e.(StorageError); return ok }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
