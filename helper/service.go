// Package helper is the privileged half of a privsep pair. It answers
// capability requests sent by an rpc.Client.
package helper

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/progrium/privsep-go/caps"
	"github.com/progrium/privsep-go/rpc"
)

// Request is the common shape of every message. Op selects the handler;
// the remaining fields are read only by the ops that need them.
type Request struct {
	Op          string        `json:"op"`
	Enable      bool          `json:"enable"`
	Effective   []interface{} `json:"effective"`
	Permitted   []interface{} `json:"permitted"`
	Inheritable []interface{} `json:"inheritable"`
}

// CapSets is the reply to get_caps.
type CapSets struct {
	Effective   []string `json:"effective"`
	Permitted   []string `json:"permitted"`
	Inheritable []string `json:"inheritable"`
}

type okReply struct {
	OK bool `json:"ok"`
}

type keepcapsReply struct {
	Enabled bool `json:"enabled"`
}

type errorReply struct {
	Error string `json:"error"`
}

// Service dispatches requests to a caps.Control.
type Service struct {
	Caps *caps.Control
	Log  *zap.Logger
}

// New returns a Service over c. A nil c uses caps.New(nil).
func New(c *caps.Control, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		c = caps.New(nil, caps.WithLogger(log))
	}
	return &Service{Caps: c, Log: log}
}

// Handle computes the reply for one request payload. Failures are reported
// in the reply, never as a Go error, so the channel stays up.
func (s *Service) Handle(payload interface{}) interface{} {
	reply, err := s.handle(payload)
	if err != nil {
		s.Log.Warn("request failed", zap.Error(err))
		return errorReply{Error: err.Error()}
	}
	return reply
}

func (s *Service) handle(payload interface{}) (interface{}, error) {
	var req Request
	if err := rpc.Decode(payload, &req); err != nil {
		return nil, err
	}
	s.Log.Debug("request", zap.String("op", req.Op))

	switch req.Op {
	case "ping":
		return ping(payload), nil

	case "get_caps":
		eff, prm, inh, err := s.Caps.GetCaps()
		if err != nil {
			return nil, err
		}
		return CapSets{
			Effective:   caps.Names(eff),
			Permitted:   caps.Names(prm),
			Inheritable: caps.Names(inh),
		}, nil

	case "drop_caps":
		eff, err := parseCaps(req.Effective)
		if err != nil {
			return nil, fmt.Errorf("effective: %w", err)
		}
		prm, err := parseCaps(req.Permitted)
		if err != nil {
			return nil, fmt.Errorf("permitted: %w", err)
		}
		inh, err := parseCaps(req.Inheritable)
		if err != nil {
			return nil, fmt.Errorf("inheritable: %w", err)
		}
		if err := s.Caps.DropAllCapsExcept(eff, prm, inh); err != nil {
			return nil, err
		}
		return okReply{OK: true}, nil

	case "set_keepcaps":
		if err := s.Caps.SetKeepCaps(req.Enable); err != nil {
			return nil, err
		}
		return okReply{OK: true}, nil

	case "keepcaps":
		on, err := s.Caps.KeepCaps()
		if err != nil {
			return nil, err
		}
		return keepcapsReply{Enabled: on}, nil

	case "":
		return nil, fmt.Errorf("missing op")
	default:
		return nil, fmt.Errorf("unknown op %q", req.Op)
	}
}

func ping(payload interface{}) map[string]interface{} {
	in, _ := payload.(map[string]interface{})
	out := make(map[string]interface{}, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	out["ack"] = true
	return out
}

// parseCaps accepts ids as JSON numbers and names as strings.
func parseCaps(in []interface{}) ([]caps.Cap, error) {
	out := make([]caps.Cap, 0, len(in))
	for _, v := range in {
		switch v := v.(type) {
		case float64:
			c := caps.Cap(v)
			if v < 0 || float64(c) != v || !c.Valid() {
				return nil, fmt.Errorf("%w: %v", caps.ErrInvalidCap, v)
			}
			out = append(out, c)
		case string:
			c, err := caps.Parse(v)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		default:
			return nil, fmt.Errorf("%w: %v", caps.ErrInvalidCap, v)
		}
	}
	return out, nil
}

// Serve answers requests on srv until the client shuts down its write side.
// Each request is handled in its own goroutine and replies are written as
// they complete. The write side is closed once every reply is out.
func Serve(srv *rpc.Server, svc *Service) error {
	var g errgroup.Group
	err := func() error {
		for {
			var req rpc.Envelope
			err := srv.Receive(&req)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			g.Go(func() error {
				return srv.Send(rpc.Envelope{ID: req.ID, Payload: svc.Handle(req.Payload)})
			})
		}
	}()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if cerr := srv.Close(); err == nil {
		err = cerr
	}
	return err
}
