package replica

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zeusync/replicanet/internal/core/protocol/bitstream"
	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/registry"
)

// Frame errors
var (
	// ErrUnresolvedNetworkID is reported for a serialization of an object that
	// was never constructed. The frame is dropped; the connection stays usable.
	ErrUnresolvedNetworkID = errors.New("replica: unresolved network id")

	// ErrTrailingData means bits were left after every component was decoded.
	ErrTrailingData = errors.New("replica: trailing data after last component")

	// Encode-side errors

	ErrComponentNotResolved = errors.New("replica: component not in resolved kind list")
	ErrKindMismatch         = errors.New("replica: payload kind does not match its key")
)

// Frame operations used in FrameError.Op.
const (
	OpDecodeConstruction  = "decode construction"
	OpDecodeSerialization = "decode serialization"
	OpEncodeConstruction  = "encode construction"
	OpEncodeSerialization = "encode serialization"
)

// FrameError describes where a frame failed. Kind is zero when the failure
// is not tied to one component.
type FrameError struct {
	Op         string
	NetworkID  uint16
	TemplateID int32
	Kind       component.Kind
	BitOffset  uint64
	Cause      error
}

func (e *FrameError) Error() string {
	var b strings.Builder
	b.WriteString("replica: ")
	b.WriteString(e.Op)
	fmt.Fprintf(&b, " network_id=%d", e.NetworkID)
	if e.TemplateID != 0 {
		fmt.Fprintf(&b, " template=%d", e.TemplateID)
	}
	if e.Kind != 0 {
		fmt.Fprintf(&b, " kind=%s", e.Kind)
	}
	fmt.Fprintf(&b, " at bit %d", e.BitOffset)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *FrameError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether the frame can simply be dropped.
func (e *FrameError) IsRecoverable() bool {
	return errors.Is(e.Cause, ErrUnresolvedNetworkID)
}

// IsFatal reports whether the frame's contents could not be interpreted.
// Decoding must not continue on the same buffer after a fatal error.
func (e *FrameError) IsFatal() bool {
	return !e.IsRecoverable()
}

// IsRecoverable reports whether err only means the frame should be dropped.
func IsRecoverable(err error) bool {
	var fe *FrameError
	if errors.As(err, &fe) {
		return fe.IsRecoverable()
	}
	return errors.Is(err, ErrUnresolvedNetworkID)
}

// reason condenses err into a short label for logs.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrUnresolvedNetworkID):
		return "unresolved_network_id"
	case errors.Is(err, registry.ErrUnknownComponentKind):
		return "unknown_component_kind"
	case errors.Is(err, bitstream.ErrTruncatedStream):
		return "truncated"
	case errors.Is(err, bitstream.ErrCollectionTooLarge):
		return "collection_too_large"
	case errors.Is(err, ErrTrailingData):
		return "trailing_data"
	default:
		return "other"
	}
}
