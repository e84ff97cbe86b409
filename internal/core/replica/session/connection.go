package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/replicanet/internal/core/replica"
)

// Connection is the replica state shared with one peer: what the peer told
// us (decoder) and what we told the peer (encoder). Calls are serialized so
// frames of one connection are handled in arrival order.
type Connection struct {
	id uuid.UUID

	mu      sync.Mutex
	decoder *replica.Decoder
	encoder *replica.Encoder
}

func (c *Connection) ID() uuid.UUID {
	return c.id
}

func (c *Connection) DecodeConstruction(ctx context.Context, templateID int32, buf []byte) (*replica.ConstructionFrame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decoder.DecodeConstruction(ctx, templateID, buf)
}

func (c *Connection) DecodeSerialization(networkID uint16, buf []byte) (*replica.SerializationFrame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decoder.DecodeSerialization(networkID, buf)
}

// Remove handles the peer's destruction of networkID.
func (c *Connection) Remove(networkID uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decoder.Remove(networkID)
}

func (c *Connection) Status(networkID uint16) replica.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decoder.Status(networkID)
}

func (c *Connection) Create(ctx context.Context, networkID uint16, templateID int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.Create(ctx, networkID, templateID)
}

func (c *Connection) EncodeConstruction(networkID uint16, state replica.ConstructionState) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.EncodeConstruction(networkID, state)
}

func (c *Connection) EncodeSerialization(networkID uint16, state replica.SerializationState) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.EncodeSerialization(networkID, state)
}

func (c *Connection) Destroy(networkID uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encoder.Destroy(networkID)
}
