package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	tasks := []Task{
		{ID: 1718000000000, Title: "Buy milk", Description: "", Completed: false},
		{ID: 2, Title: "Done thing", Description: "notes", Completed: true},
	}

	data, err := Encode(tasks)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("encoded data should end with a newline")
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Errorf("expected 2-space indentation, got:\n%s", data)
	}

	loaded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Tasks count: got %d, want 2", len(loaded))
	}
	if loaded[0] != tasks[0] || loaded[1] != tasks[1] {
		t.Errorf("decoded tasks differ: %+v", loaded)
	}
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Encode(nil) = %q", data)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLen  int
		wantErr  bool
		wantPath string
	}{
		{name: "empty array", input: `[]`, wantLen: 0},
		{name: "description optional", input: `[{"id":1,"title":"a","completed":false}]`, wantLen: 1},
		{name: "extra fields tolerated", input: `[{"id":1,"title":"a","completed":true,"userId":3}]`, wantLen: 1},
		{name: "empty title tolerated at rest", input: `[{"id":1,"title":"","completed":false}]`, wantLen: 1},
		{name: "not json", input: `{not json`, wantErr: true},
		{name: "object instead of array", input: `{"id":1}`, wantErr: true},
		{name: "missing title", input: `[{"id":1,"title":"a","completed":false},{"id":2,"completed":false}]`, wantErr: true, wantPath: "[1]"},
		{name: "wrong title type", input: `[{"id":1,"title":5,"completed":false}]`, wantErr: true, wantPath: "[0].title"},
		{name: "fractional id", input: `[{"id":1.5,"title":"a","completed":false}]`, wantErr: true, wantPath: "[0].id"},
		{name: "string completed", input: `[{"id":1,"title":"a","completed":"yes"}]`, wantErr: true, wantPath: "[0].completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Decode([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got tasks %+v", tasks)
				}
				if tt.wantPath != "" {
					var ve *ValidationError
					if !errors.As(err, &ve) {
						t.Fatalf("expected *ValidationError, got %T: %v", err, err)
					}
					if ve.Path != tt.wantPath {
						t.Errorf("path: got %q, want %q", ve.Path, tt.wantPath)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tasks) != tt.wantLen {
				t.Errorf("len: got %d, want %d", len(tasks), tt.wantLen)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"/":         "",
		"#/0":       "[0]",
		"/2/title":  "[2].title",
		"/0/a~1b":   "[0].a/b",
		"/0/a~0b/3": "[0].a~b[3]",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	ve := &ValidationError{Path: "[0].id", Err: inner}
	if !errors.Is(ve, inner) {
		t.Error("expected errors.Is to find wrapped error")
	}
	if ve.Error() != "[0].id: boom" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if (&ValidationError{Err: inner}).Error() != "boom" {
		t.Error("path-less error should print the inner message")
	}
}
