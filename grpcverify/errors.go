package grpcverify

import (
	"errors"
	"strings"

	"google.golang.org/grpc/status"

	"ccnkit.dev/go/sigverify"
)

func asSigErr(err error, target **sigverify.Error) bool {
	return errors.As(err, target)
}

// kindPrefixes are the structured kinds the server encodes into status
// messages as "Kind: message".
var kindPrefixes = []sigverify.Kind{
	sigverify.KindInvalidKey,
	sigverify.KindUnsupportedAlgorithm,
	sigverify.KindUnsupportedKeyType,
	sigverify.KindEngineError,
}

// mapRPC converts a status error back into the structured error the local
// verifier would have produced, so remote and local callers share one
// failure-handling code path.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	msg := st.Message()
	for _, kind := range kindPrefixes {
		if strings.HasPrefix(msg, string(kind)+": ") {
			return &sigverify.Error{
				Kind:    kind,
				Message: strings.TrimPrefix(msg, string(kind)+": "),
				Cause:   err,
			}
		}
	}
	return err
}
