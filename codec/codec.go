// Package codec centralizes JSON serialization of component values so the
// rest of the module never imports a JSON library directly.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

func Encode(comp any) ([]byte, error) {
	bz, err := json.Marshal(comp)
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return bz, nil
}

// EncodeIndent is used for human-readable state dumps.
func EncodeIndent(comp any) ([]byte, error) {
	bz, err := json.MarshalIndent(comp, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return bz, nil
}

func Decode[T any](bz []byte) (T, error) {
	comp := new(T)
	if err := json.Unmarshal(bz, comp); err != nil {
		return *comp, eris.Wrap(err, "")
	}
	return *comp, nil
}
