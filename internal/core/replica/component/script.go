package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

// ScriptConstruction carries the object's compressed network variables
// verbatim; their inner format belongs to the script layer.
type ScriptConstruction struct {
	NetworkVars *[]byte
}

func (*ScriptConstruction) Kind() Kind    { return KindScript }
func (*ScriptConstruction) construction() {}

func (c *ScriptConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.NetworkVars, writeBlob)
}

func (c *ScriptConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.NetworkVars, err = bitstream.ReadOptional(r, readBlob)
	return err
}
