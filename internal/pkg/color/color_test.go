package color

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		r, g, b float64
		wantErr bool
	}{
		{"black", "#000000", 0, 0, 0, false},
		{"white", "#FFFFFF", 1, 1, 1, false},
		{"red", "#FF0000", 1, 0, 0, false},
		{"no hash", "FF8800", 1, 0x88 / 255.0, 0, false},
		{"lowercase", "#ff8800", 1, 0x88 / 255.0, 0, false},
		{"short form", "#0f0", 0, 1, 0, false},
		{"padded", "  #0000FF ", 0, 0, 1, false},
		{"too short", "#FF", 0, 0, 0, true},
		{"too long", "#FFFFFFFF", 0, 0, 0, true},
		{"not hex", "#GGHHII", 0, 0, 0, true},
		{"empty", "", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(c.Red-tt.r) > 0.002 || math.Abs(c.Green-tt.g) > 0.002 || math.Abs(c.Blue-tt.b) > 0.002 {
				t.Errorf("got (%f, %f, %f), want (%f, %f, %f)", c.Red, c.Green, c.Blue, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	c, err := Optional("")
	if c != nil || err != nil {
		t.Errorf("Optional(\"\") = %v, %v; want nil, nil", c, err)
	}
	if _, err := Optional("#zzz"); err == nil {
		t.Error("Optional with invalid color should fail")
	}
}

func TestParseBlackEncodesChannels(t *testing.T) {
	c, err := Parse("#000000")
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"red", "green", "blue"} {
		if _, ok := m[k]; !ok {
			t.Errorf("MarshalJSON() = %s, missing %q", data, k)
		}
	}
}
