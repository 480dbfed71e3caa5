//go:build linux

package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/progrium/privsep-go/caps"
)

var capsCmd = &command{
	Usage: "caps",
	Short: "print the capability sets of this process",
	Run: func(log *zap.Logger, args []string) error {
		eff, prm, inh, err := caps.New(nil, caps.WithLogger(log)).GetCaps()
		if err != nil {
			return err
		}
		fmt.Println("effective:  ", strings.Join(caps.Names(eff), " "))
		fmt.Println("permitted:  ", strings.Join(caps.Names(prm), " "))
		fmt.Println("inheritable:", strings.Join(caps.Names(inh), " "))
		return nil
	},
}
