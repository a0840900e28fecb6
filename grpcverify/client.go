package grpcverify

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"ccnkit.dev/go/envelope"
)

// Client verifies envelopes against a remote Verifier service.
type Client struct {
	cc     *grpc.ClientConn
	client VerifierClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewVerifierClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Verify marshals env and asks the remote service for the trust decision.
// A false outcome is returned with a nil error; structured failures come
// back as *sigverify.Error values.
func (c *Client) Verify(ctx context.Context, env *envelope.Envelope) (bool, error) {
	data, err := env.Marshal()
	if err != nil {
		return false, err
	}
	return c.VerifyBytes(ctx, data)
}

// VerifyBytes is Verify for an already-marshaled envelope.
func (c *Client) VerifyBytes(ctx context.Context, data []byte) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reply, err := c.client.Verify(ctx, wrapperspb.Bytes(data))
	if err != nil {
		return false, mapRPC(err)
	}
	return reply.GetValue(), nil
}

// KeyInfo returns the CID of DER key material as computed by the remote
// service.
func (c *Client) KeyInfo(ctx context.Context, keyDER []byte) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reply, err := c.client.KeyInfo(ctx, wrapperspb.Bytes(keyDER))
	if err != nil {
		return "", mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}
