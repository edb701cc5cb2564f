package mapper

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode converts a mapping result into a typed value. Struct fields are
// matched by their json tag, falling back to a case-insensitive field name.
func Decode[T any](res MappingResult) (T, error) {
	var out T

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, fmt.Errorf("creating decoder: %w", err)
	}

	if err := dec.Decode(res.Result); err != nil {
		return out, fmt.Errorf("decoding mapping result: %w", err)
	}

	return out, nil
}
