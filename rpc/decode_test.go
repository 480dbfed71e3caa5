package rpc

import (
	"testing"
)

func TestDecode(t *testing.T) {
	var out struct {
		Op      string `json:"op"`
		Enable  bool   `json:"enable"`
		Effect  []int  `json:"effective"`
		Ignored string `json:"-"`
	}
	in := map[string]interface{}{
		"op":        "drop_caps",
		"enable":    true,
		"effective": []interface{}{float64(0), float64(12)},
	}
	if err := Decode(in, &out); err != nil {
		t.Fatal(err)
	}
	if out.Op != "drop_caps" || !out.Enable || len(out.Effect) != 2 || out.Effect[1] != 12 {
		t.Fatalf("unexpected decode: %#v", out)
	}
}

func TestDecodeError(t *testing.T) {
	var out struct {
		Enable bool `json:"enable"`
	}
	if err := Decode(map[string]interface{}{"enable": []interface{}{1}}, &out); err == nil {
		t.Fatal("expected error")
	}
}
