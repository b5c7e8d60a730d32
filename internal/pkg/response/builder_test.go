package response

import (
	"strings"
	"testing"
)

func TestBuilderHeader(t *testing.T) {
	got := New().Header("Test %s", "Header").Build()
	want := "═══ Test Header ═══\n"
	if got != want {
		t.Errorf("Header = %q, want %q", got, want)
	}
}

func TestBuilderSuccess(t *testing.T) {
	got := New().Success("Successfully updated data in %s", "A1:B2").Build()
	want := "✅ Successfully updated data in A1:B2\n"
	if got != want {
		t.Errorf("Success = %q, want %q", got, want)
	}
}

func TestBuilderKeyValue(t *testing.T) {
	got := New().KeyValue("Range", "Sheet1!A1:B2").Build()
	want := "• Range: Sheet1!A1:B2\n"
	if got != want {
		t.Errorf("KeyValue = %q, want %q", got, want)
	}
}

func TestBuilderItem(t *testing.T) {
	got := New().Item("sheet %d", 1).Build()
	want := "  → sheet 1\n"
	if got != want {
		t.Errorf("Item = %q, want %q", got, want)
	}
}

func TestBuilderJSON(t *testing.T) {
	got := New().JSON(map[string]any{"values": [][]string{{"a"}}}).Build()
	want := "{\n  \"values\": [\n    [\n      \"a\"\n    ]\n  ]\n}\n"
	if got != want {
		t.Errorf("JSON = %q, want %q", got, want)
	}
}

func TestBuilderJSONUnencodable(t *testing.T) {
	got := New().JSON(make(chan int)).Build()
	if !strings.HasSuffix(got, "\n") || got == "\n" {
		t.Errorf("JSON fallback = %q", got)
	}
}

func TestBuilderComposite(t *testing.T) {
	got := New().
		Header("Results").
		KeyValue("Count", 3).
		Blank().
		Item("First").
		Section("Details").
		Line("Some detail").
		Build()

	for _, want := range []string{"═══ Results ═══", "• Count: 3", "  → First", "── Details ──", "Some detail"} {
		if !strings.Contains(got, want) {
			t.Errorf("composite output missing %q:\n%s", want, got)
		}
	}
}

func TestFailure(t *testing.T) {
	res := Failuref("Unknown tool: %s", "nope")
	if got := TextOf(res); got != "❌ Unknown tool: nope" {
		t.Errorf("Failuref text = %q", got)
	}
	if !IsFailure(res) {
		t.Error("IsFailure = false for a failure result")
	}
	if res.IsError {
		t.Error("failure results must not set IsError")
	}
	if len(res.Content) != 1 {
		t.Errorf("content blocks = %d, want 1", len(res.Content))
	}
}

func TestTextResult(t *testing.T) {
	res := New().Header("Done").TextResult()
	if IsFailure(res) {
		t.Error("IsFailure = true for a success result")
	}
	if TextOf(res) != "═══ Done ═══\n" {
		t.Errorf("TextOf = %q", TextOf(res))
	}
	if TextOf(nil) != "" {
		t.Error("TextOf(nil) should be empty")
	}
}
