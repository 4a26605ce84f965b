package blockstore

import "github.com/chronoblock/tscore/internal/codec"

// Block storage reuses the codec package's Kind-tagged StoreError rather
// than defining a parallel error taxonomy; OutOfBounds/BadArg/BadData/
// Overflow/IoFailure/Fatal mean the same thing whether they come from a
// malformed varint or a corrupted volume.
type Kind = codec.Kind

const (
	OutOfBounds = codec.OutOfBounds
	BadArg      = codec.BadArg
	BadData     = codec.BadData
	Overflow    = codec.Overflow
	IoFailure   = codec.IoFailure
	Fatal       = codec.Fatal
)

type StoreError = codec.StoreError

func newErr(kind codec.Kind, msg string, cause error) *StoreError {
	return &StoreError{Kind: kind, Message: msg, Cause: cause}
}

func outOfBounds(msg string) error        { return newErr(OutOfBounds, msg, nil) }
func badArg(msg string) error             { return newErr(BadArg, msg, nil) }
func badData(msg string) error            { return newErr(BadData, msg, nil) }
func overflow(msg string) error           { return newErr(Overflow, msg, nil) }
func ioFailure(msg string, c error) error { return newErr(IoFailure, msg, c) }
func fatal(msg string, c error) error     { return newErr(Fatal, msg, c) }
