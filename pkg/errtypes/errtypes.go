// Package errtypes contains definitions for the typed errors the hub
// core returns. It would have been nice to call this package errors,
// err or error but errors clashes with github.com/pkg/errors, err is
// used for any error variable and error is a reserved word :)
//
// Every type carries a fixed 4-byte wire code. The code table is part
// of the client protocol and must never be renumbered.
package errtypes

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Wire codes, carried big-endian in the x-hub-code-bin trailer and in
// the X-Hub-Code header of bulk-plane error responses.
const (
	CodeTarNotExist          uint32 = 1000
	CodeFileNotExist         uint32 = 1001
	CodeDirNotExist          uint32 = 1002
	CodeConfigNotExist       uint32 = 1003
	CodeConfigureError       uint32 = 1004
	CodeDirHasExist          uint32 = 1005
	CodeIOError              uint32 = 1006
	CodeOtherError           uint32 = 1007
	CodeHashNotMatch         uint32 = 1008
	CodeResourceNotFound     uint32 = 1009
	CodeInvalidPath          uint32 = 1010
	CodeUnsupportedAPI       uint32 = 1100
	CodeMalformedAPIResponse uint32 = 1101
	CodeUnsupportedErrorCode uint32 = 1102
	CodeDecodeError          uint32 = 1200
	CodeEncodeError          uint32 = 1201
)

var codeNames = map[uint32]string{
	CodeTarNotExist:          "TarNotExist",
	CodeFileNotExist:         "FileNotExist",
	CodeDirNotExist:          "DirNotExist",
	CodeConfigNotExist:       "ConfigNotExist",
	CodeConfigureError:       "ConfigureError",
	CodeDirHasExist:          "DirHasExist",
	CodeIOError:              "IOError",
	CodeOtherError:           "OtherError",
	CodeHashNotMatch:         "HashNotMatch",
	CodeResourceNotFound:     "ResourceNotFound",
	CodeInvalidPath:          "InvalidPath",
	CodeUnsupportedAPI:       "UnsupportedApi",
	CodeMalformedAPIResponse: "MalformedApiResponse",
	CodeUnsupportedErrorCode: "UnSupportedErrorCode",
	CodeDecodeError:          "DecodeError",
	CodeEncodeError:          "EncodeError",
}

// NameOf returns the symbolic name for a wire code, or the empty
// string if the code is not in the table.
func NameOf(code uint32) string { return codeNames[code] }

// Coder is implemented by every error in this package.
type Coder interface {
	Code() uint32
}

// Code resolves the wire code of any error, walking wrapped causes.
// Errors without a typed cause map to OtherError.
func Code(err error) uint32 {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeOtherError
}

// CodeBytes returns the wire code of err as a 4-byte big-endian blob.
func CodeBytes(err error) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, Code(err))
	return b
}

// DecodeCode parses a 4-byte big-endian wire code. Blobs of any other
// length fail with UnsupportedErrorCode.
func DecodeCode(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, UnsupportedErrorCode(0)
	}
	return binary.BigEndian.Uint32(b), nil
}

// TarNotExist is the error to use when an archive is not in the store.
type TarNotExist string

func (e TarNotExist) Error() string { return "error: tar with hash '" + string(e) + "' does not exist" }

// Code returns the wire code.
func (e TarNotExist) Code() uint32 { return CodeTarNotExist }

// IsNotFound implements the IsNotFound interface.
func (e TarNotExist) IsNotFound() {}

// FileNotExist is the error to use when an extracted entry is missing on disk.
type FileNotExist string

func (e FileNotExist) Error() string { return "error: file '" + string(e) + "' does not exist" }

// Code returns the wire code.
func (e FileNotExist) Code() uint32 { return CodeFileNotExist }

// IsNotFound implements the IsNotFound interface.
func (e FileNotExist) IsNotFound() {}

// DirNotExist is the error to use when a target directory is missing.
type DirNotExist string

func (e DirNotExist) Error() string { return "error: directory '" + string(e) + "' does not exist" }

// Code returns the wire code.
func (e DirNotExist) Code() uint32 { return CodeDirNotExist }

// IsNotFound implements the IsNotFound interface.
func (e DirNotExist) IsNotFound() {}

// ConfigNotExist is the error to use when no configuration was found.
type ConfigNotExist string

func (e ConfigNotExist) Error() string { return "error: config not found: " + string(e) }

// Code returns the wire code.
func (e ConfigNotExist) Code() uint32 { return CodeConfigNotExist }

// IsNotFound implements the IsNotFound interface.
func (e ConfigNotExist) IsNotFound() {}

// ConfigureError is the error to use for bad configuration values.
type ConfigureError string

func (e ConfigureError) Error() string { return "error: configure error: " + string(e) }

// Code returns the wire code.
func (e ConfigureError) Code() uint32 { return CodeConfigureError }

// IsInvalidArgument implements the IsInvalidArgument interface.
func (e ConfigureError) IsInvalidArgument() {}

// DirHasExist is the error to use when extraction would clobber an
// existing target directory without overwrite permission.
type DirHasExist string

func (e DirHasExist) Error() string { return "error: directory '" + string(e) + "' already exists" }

// Code returns the wire code.
func (e DirHasExist) Code() uint32 { return CodeDirHasExist }

// IsInvalidArgument implements the IsInvalidArgument interface.
func (e DirHasExist) IsInvalidArgument() {}

// IOError is the error to use for filesystem failures inside the core.
type IOError string

func (e IOError) Error() string { return "error: io error: " + string(e) }

// Code returns the wire code.
func (e IOError) Code() uint32 { return CodeIOError }

// IsInternal implements the IsInternal interface.
func (e IOError) IsInternal() {}

// HashNotMatch is the error to use when uploaded bytes do not hash to
// the announced identifier.
type HashNotMatch struct {
	Expected string
	Found    string
}

func (e HashNotMatch) Error() string {
	return fmt.Sprintf("error: hash does not match: expected %s, found %s", e.Expected, e.Found)
}

// Code returns the wire code.
func (e HashNotMatch) Code() uint32 { return CodeHashNotMatch }

// IsInvalidArgument implements the IsInvalidArgument interface.
func (e HashNotMatch) IsInvalidArgument() {}

// ResourceNotFound is the error to use when a transfer ticket is
// absent, consumed or expired.
type ResourceNotFound string

func (e ResourceNotFound) Error() string { return "error: resource not found: " + string(e) }

// Code returns the wire code.
func (e ResourceNotFound) Code() uint32 { return CodeResourceNotFound }

// IsNotFound implements the IsNotFound interface.
func (e ResourceNotFound) IsNotFound() {}

// InvalidPath is the error to use when a user-supplied path component
// is absolute, parent-referencing or multi-segment.
type InvalidPath string

func (e InvalidPath) Error() string { return "error: invalid path: " + string(e) }

// Code returns the wire code.
func (e InvalidPath) Code() uint32 { return CodeInvalidPath }

// IsInvalidArgument implements the IsInvalidArgument interface.
func (e InvalidPath) IsInvalidArgument() {}

// UnsupportedAPI is the error to use when an API is not supported.
type UnsupportedAPI string

func (e UnsupportedAPI) Error() string { return "error: unsupported api: " + string(e) }

// Code returns the wire code.
func (e UnsupportedAPI) Code() uint32 { return CodeUnsupportedAPI }

// IsNotSupported implements the IsNotSupported interface.
func (e UnsupportedAPI) IsNotSupported() {}

// MalformedAPIResponse is the error the client uses when a response
// lacks its data payload.
type MalformedAPIResponse string

func (e MalformedAPIResponse) Error() string {
	return "error: malformed api response for " + string(e)
}

// Code returns the wire code.
func (e MalformedAPIResponse) Code() uint32 { return CodeMalformedAPIResponse }

// IsInternal implements the IsInternal interface.
func (e MalformedAPIResponse) IsInternal() {}

// UnsupportedErrorCode is the error the client uses when a server
// conveys a code outside the table.
type UnsupportedErrorCode uint32

func (e UnsupportedErrorCode) Error() string {
	return fmt.Sprintf("error: unsupported error code %d", uint32(e))
}

// Code returns the wire code.
func (e UnsupportedErrorCode) Code() uint32 { return CodeUnsupportedErrorCode }

// IsInternal implements the IsInternal interface.
func (e UnsupportedErrorCode) IsInternal() {}

// DecodeError is the error to use when a wire message cannot be decoded.
type DecodeError string

func (e DecodeError) Error() string { return "error: decode error: " + string(e) }

// Code returns the wire code.
func (e DecodeError) Code() uint32 { return CodeDecodeError }

// IsInternal implements the IsInternal interface.
func (e DecodeError) IsInternal() {}

// EncodeError is the error to use when a wire message cannot be encoded.
type EncodeError string

func (e EncodeError) Error() string { return "error: encode error: " + string(e) }

// Code returns the wire code.
func (e EncodeError) Code() uint32 { return CodeEncodeError }

// IsInternal implements the IsInternal interface.
func (e EncodeError) IsInternal() {}

// OtherError wraps any failure that has no more specific type.
type OtherError string

func (e OtherError) Error() string { return "error: " + string(e) }

// Code returns the wire code.
func (e OtherError) Code() uint32 { return CodeOtherError }

// IsInternal implements the IsInternal interface.
func (e OtherError) IsInternal() {}

// IsNotFound is the interface to implement
// to specify that a resource is not found.
type IsNotFound interface {
	IsNotFound()
}

// IsInvalidArgument is the interface to implement
// to specify that a request argument is invalid.
type IsInvalidArgument interface {
	IsInvalidArgument()
}

// IsNotSupported is the interface to implement
// to specify that an action is not supported.
type IsNotSupported interface {
	IsNotSupported()
}

// IsInternal is the interface to implement
// to specify that something failed inside the core.
type IsInternal interface {
	IsInternal()
}
