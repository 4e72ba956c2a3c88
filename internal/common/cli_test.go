package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteOutput(t *testing.T) {
	v := struct {
		Title string `json:"title" yaml:"title"`
	}{Title: "Go"}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, "json", v); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"title": "Go"`) {
		t.Errorf("json output = %q", buf.String())
	}

	buf.Reset()
	if err := WriteOutput(&buf, "YAML", v); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "title: Go\n" {
		t.Errorf("yaml output = %q", buf.String())
	}

	if err := WriteOutput(&buf, "xml", v); err == nil {
		t.Error("expected error for unknown format")
	}
}
