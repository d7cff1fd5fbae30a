package record

import (
	"github.com/lixenwraith/keyway/key"
)

// NativeCodec converts key codes to and from a backend's own key identity
// for SYS mode streams. Backends satisfy it with their Encode and Decode
// tables.
type NativeCodec interface {
	EncodeNative(c key.Code) (native, mods uint32, ok bool)
	DecodeNative(native, mods uint32) key.Code
}

// identityCodec stores portable codes unchanged
type identityCodec struct{}

func (identityCodec) EncodeNative(c key.Code) (uint32, uint32, bool) {
	return uint32(c.Base()), uint32(c.Mods()), true
}

func (identityCodec) DecodeNative(native, mods uint32) key.Code {
	return key.Code(native).With(key.Mod(mods))
}
