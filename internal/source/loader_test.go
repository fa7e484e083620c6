package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeExport creates a temp export file and returns its path.
func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExport_Conversations(t *testing.T) {
	path := writeExport(t, `{"success":true,"data":[
		{"chat":{"history":{"messages":{
			"b":{"role":"assistant","timestamp":1736935200,"content":"hi","model":"qwen-max"},
			"a":{"role":"user","timestamp":1736935100,"content":"hello"}
		}}}},
		{"chat":{}},
		"not an object"
	]}`)

	export, err := LoadExport(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := export.ConversationCount(); got != 3 {
		t.Fatalf("ConversationCount = %d, want 3", got)
	}

	msgs := export.Conversations[0].Messages
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	// Document order is preserved; sorting happens later in the pipeline.
	if msgs[0].ID != "b" || msgs[1].ID != "a" {
		t.Errorf("IDs = [%s %s], want [b a]", msgs[0].ID, msgs[1].ID)
	}
	if msgs[0].Model.Value != "qwen-max" {
		t.Errorf("Model = %q, want qwen-max", msgs[0].Model.Value)
	}
	if !msgs[1].Timestamp.Valid || msgs[1].Timestamp.Seconds != 1736935100 {
		t.Errorf("Timestamp = %+v, want 1736935100", msgs[1].Timestamp)
	}
	if len(export.Conversations[1].Messages) != 0 || len(export.Conversations[2].Messages) != 0 {
		t.Error("conversations without a message mapping should be empty")
	}
}

func TestLoadExport_MissingFile(t *testing.T) {
	_, err := LoadExport(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestParseExport_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[1,2,3]`},
		{"null", `null`},
		{"success false", `{"success":false,"data":[]}`},
		{"success zero", `{"success":0,"data":[]}`},
		{"success empty string", `{"success":"","data":[]}`},
		{"success missing", `{"data":[]}`},
		{"data missing", `{"success":true}`},
		{"data object", `{"success":true,"data":{}}`},
		{"data null", `{"success":true,"data":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExport([]byte(tt.body))
			if !errors.Is(err, ErrMalformedExport) {
				t.Errorf("ParseExport(%s) error = %v, want ErrMalformedExport", tt.body, err)
			}
		})
	}
}

func TestParseExport_InvalidJSON(t *testing.T) {
	_, err := ParseExport([]byte(`{"success":true,`))
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if errors.Is(err, ErrMalformedExport) {
		t.Error("syntax errors should not be reported as malformed exports")
	}
}

func TestParseExport_TruthySuccess(t *testing.T) {
	for _, success := range []string{`true`, `1`, `"ok"`, `[1]`, `{"a":1}`} {
		body := `{"success":` + success + `,"data":[]}`
		export, err := ParseExport([]byte(body))
		if err != nil {
			t.Errorf("success=%s: unexpected error: %v", success, err)
			continue
		}
		if export.ConversationCount() != 0 {
			t.Errorf("success=%s: ConversationCount = %d, want 0", success, export.ConversationCount())
		}
	}
}

func TestParseExport_LenientFields(t *testing.T) {
	export, err := ParseExport([]byte(`{"success":true,"data":[{"chat":{"history":{"messages":{
		"m1":{"role":"assistant","timestamp":null,"content":42,"content_list":[{"content":"A"},{"content":7},"x",{"content":"B"}]},
		"m2":{"role":["user"],"timestamp":"1736935100","content":"text","content_list":"nope"},
		"m3":{"role":"user","timestamp":1736935100.9},
		"m4":"skip me",
		"m5":null
	}}}}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := export.Conversations[0].Messages
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3 (non-object records skipped)", len(msgs))
	}

	m1 := msgs[0]
	if m1.Timestamp.Valid {
		t.Error("null timestamp should be invalid")
	}
	if m1.Content.Valid {
		t.Error("numeric content should be invalid")
	}
	if !m1.ContentList.Present || len(m1.ContentList.Fragments) != 4 {
		t.Fatalf("ContentList = %+v, want 4 fragments", m1.ContentList)
	}
	if !m1.ContentList.Fragments[0].Valid || m1.ContentList.Fragments[1].Valid || m1.ContentList.Fragments[2].Valid {
		t.Errorf("fragment validity = %+v", m1.ContentList.Fragments)
	}

	m2 := msgs[1]
	if m2.Role.Valid {
		t.Error("array role should be invalid")
	}
	if m2.Timestamp.Valid {
		t.Error("string timestamp should be invalid")
	}
	if m2.ContentList.Present {
		t.Error("string content_list should not be present")
	}

	m3 := msgs[2]
	if !m3.Timestamp.Valid || m3.Timestamp.Seconds != 1736935100 {
		t.Errorf("fractional timestamp = %+v, want 1736935100", m3.Timestamp)
	}
}

func TestLookup(t *testing.T) {
	doc := []byte(`{"chat":{"history":{"messages":{"x":1}},"list":[1]}}`)

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"full path", []string{"chat", "history", "messages"}, `{"x":1}`},
		{"missing leaf", []string{"chat", "history", "nope"}, ""},
		{"missing middle", []string{"chat", "nope", "messages"}, ""},
		{"through array", []string{"chat", "list", "x"}, ""},
		{"no keys", nil, string(doc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Lookup(doc, tt.keys...))
			if got != tt.want {
				t.Errorf("Lookup(%v) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestOrderedMembers_DuplicateKeys(t *testing.T) {
	got := orderedMembers([]byte(`{"a":1,"b":2,"a":3}`))
	if len(got) != 2 {
		t.Fatalf("members = %d, want 2", len(got))
	}
	if got[0].key != "a" || string(got[0].value) != "3" {
		t.Errorf("first member = %s:%s, want a:3", got[0].key, got[0].value)
	}
	if got[1].key != "b" {
		t.Errorf("second key = %s, want b", got[1].key)
	}
}

// FuzzOptionalUnix checks that arbitrary timestamp values never panic and never
// produce a valid timestamp from non-numeric input.
func FuzzOptionalUnix(f *testing.F) {
	f.Add([]byte(`1736935100`))
	f.Add([]byte(`1736935100.5`))
	f.Add([]byte(`-1`))
	f.Add([]byte(`null`))
	f.Add([]byte(`"1736935100"`))
	f.Add([]byte(`true`))
	f.Add([]byte(`1e400`))
	f.Add([]byte(``))

	f.Fuzz(func(t *testing.T, data []byte) {
		var u OptionalUnix
		if err := u.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%q) returned error %v", data, err)
		}
		if u.Valid && len(data) > 0 && data[0] == '"' {
			t.Errorf("string input %q decoded as valid timestamp", data)
		}
	})
}
