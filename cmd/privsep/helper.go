//go:build linux

package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/progrium/privsep-go/caps"
	"github.com/progrium/privsep-go/helper"
	"github.com/progrium/privsep-go/rpc"
	"github.com/progrium/privsep-go/transport"
)

var helperCmd = &command{
	Usage: "helper",
	Short: "serve capability requests on $" + fdEnv,
	Run: func(log *zap.Logger, args []string) error {
		fd, err := strconv.ParseUint(os.Getenv(fdEnv), 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", fdEnv, err)
		}
		conn, err := transport.FileConn(uintptr(fd), "privsep")
		if err != nil {
			return err
		}
		defer conn.Close()

		log = log.With(zap.Int("pid", os.Getpid()))
		log.Debug("helper serving", zap.Uint64("fd", fd))
		svc := helper.New(caps.New(nil, caps.WithLogger(log)), log)
		return helper.Serve(rpc.NewServer(conn, rpc.WithLogger(log)), svc)
	},
}
