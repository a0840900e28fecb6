package wire_test

import (
	"testing"

	"ccnkit.dev/go/wire"
	"ccnkit.dev/go/wiretest"
)

func TestDecoderConformance(t *testing.T) {
	wiretest.RunDecoderConformance(t, func(t *testing.T, data []byte) wiretest.Decoder {
		return wire.NewDecoder(data)
	})
}
