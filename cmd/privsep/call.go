//go:build linux

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/progrium/clon-go"
	"go.uber.org/zap"

	"github.com/progrium/privsep-go/rpc"
	"github.com/progrium/privsep-go/transport"
)

var callCmd = &command{
	Usage: "call key=value ...",
	Short: "send one message to a privsep helper",
	Run: func(log *zap.Logger, args []string) error {
		var msg any = map[string]any{"op": "ping"}
		if len(args) > 0 {
			var err error
			msg, err = clon.Parse(args)
			if err != nil {
				return err
			}
		}

		parent, child, err := transport.SocketpairFiles()
		if err != nil {
			return err
		}
		defer parent.Close()

		self, err := os.Executable()
		if err != nil {
			child.Close()
			return err
		}
		helperArgs := []string{"helper"}
		if log.Core().Enabled(zap.DebugLevel) {
			helperArgs = append([]string{"-v"}, helperArgs...)
		}
		cmd := exec.Command(self, helperArgs...)
		cmd.Stderr = os.Stderr
		cmd.ExtraFiles = []*os.File{child}
		cmd.Env = append(os.Environ(), fdEnv+"=3")
		err = cmd.Start()
		child.Close()
		if err != nil {
			return err
		}

		client := rpc.NewClient(parent, rpc.WithLogger(log))
		reply, err := client.SendRecv(msg)
		if err != nil {
			parent.Close()
			cmd.Wait()
			return err
		}
		if err := client.Close(); err != nil {
			log.Warn("close", zap.Error(err))
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("helper: %w", err)
		}

		b, err := json.MarshalIndent(reply, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}
