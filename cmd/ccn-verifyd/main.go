// ccn-verifyd serves signature verification over gRPC.
package main

import (
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"google.golang.org/grpc"

	"ccnkit.dev/go/engine"
	"ccnkit.dev/go/grpcverify"
	"ccnkit.dev/go/sigverify"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ccn-verifyd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7788", "listen address")
	workers := fs.Int("workers", 4, "asynchronous engine workers")
	syncOnly := fs.Bool("sync-only", false, "disable the asynchronous engine")
	level := fs.String("log-level", "info", "log level (trace..panic)")
	_ = fs.Parse(args)

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(*level); err == nil {
		logger.SetLevel(lvl)
	}
	log := logger.WithField("component", "ccn-verifyd")

	verifier := &sigverify.Verifier{}
	var pool *engine.Pool
	if !*syncOnly {
		pool = engine.NewPool(*workers)
		verifier.Engine = pool
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		log.WithError(err).Error("listen failed")
		return 1
	}

	srv := grpc.NewServer()
	grpcverify.RegisterVerifierServer(srv, &grpcverify.Server{Verifier: verifier, Log: log})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	log.WithFields(logrus.Fields{
		"addr":      lis.Addr().String(),
		"sync_only": *syncOnly,
		"workers":   *workers,
	}).Info("listening")

	var serveErr error
	select {
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
		srv.GracefulStop()
		serveErr = <-errCh
	case serveErr = <-errCh:
		if serveErr != nil {
			log.WithError(serveErr).Error("serve failed")
		}
	}

	var closeErr error
	if pool != nil {
		closeErr = pool.Close()
	}
	if err := multierr.Append(serveErr, closeErr); err != nil {
		log.WithError(err).Error("shutdown incomplete")
		return 1
	}
	log.Info("stopped")
	return 0
}
