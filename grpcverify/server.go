package grpcverify

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"ccnkit.dev/go/envelope"
	"ccnkit.dev/go/keys"
	"ccnkit.dev/go/sigverify"
)

// Server exposes a sigverify.Verifier over the Verifier gRPC service.
type Server struct {
	UnimplementedVerifierServer

	Verifier *sigverify.Verifier

	// Log, when non-nil, receives one entry per request with a request ID
	// and outcome fields.
	Log *logrus.Entry
}

func (s *Server) Verify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	if s == nil || s.Verifier == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing verifier")
	}
	log := s.requestLog("Verify")

	env, err := envelope.Parse(in.GetValue())
	if err != nil {
		log.WithError(err).Info("envelope rejected")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ok, err := env.Verify(s.Verifier, sigverify.Options{}).Wait(ctx)
	if err != nil {
		log.WithError(err).Warn("verification failed")
		return nil, mapErr(err)
	}
	log.WithField("verified", ok).Info("verification complete")
	// A false outcome is a normal response, not an error.
	return wrapperspb.Bool(ok), nil
}

func (s *Server) KeyInfo(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing server")
	}
	log := s.requestLog("KeyInfo")

	key, err := keys.ParseDER(in.GetValue())
	if err != nil {
		log.WithError(err).Info("key rejected")
		return nil, status.Errorf(codes.InvalidArgument, "%s: %s", sigverify.KindInvalidKey, err)
	}
	id, err := key.CID()
	if err != nil {
		return nil, status.Error(codes.Internal, "cid computation failed")
	}
	log.WithFields(logrus.Fields{"type": key.Type().String(), "cid": id.String()}).Info("key inspected")
	return wrapperspb.String(id.String()), nil
}

func (s *Server) requestLog(method string) *logrus.Entry {
	log := s.Log
	if log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(logger)
	}
	return log.WithFields(logrus.Fields{"request_id": uuid.NewString(), "method": method})
}

// mapErr converts a Result failure into a status error, keeping the kind in
// the message so clients can map it back.
func mapErr(err error) error {
	var e *sigverify.Error
	code := codes.Internal
	switch {
	case sigverify.IsKind(err, sigverify.KindInvalidKey),
		sigverify.IsKind(err, sigverify.KindUnsupportedAlgorithm),
		sigverify.IsKind(err, sigverify.KindUnsupportedKeyType):
		code = codes.InvalidArgument
	case sigverify.IsKind(err, sigverify.KindEngineError):
		code = codes.Internal
	}
	if asSigErr(err, &e) {
		return status.Errorf(code, "%s: %s", e.Kind, e.Message)
	}
	return status.Error(code, err.Error())
}
