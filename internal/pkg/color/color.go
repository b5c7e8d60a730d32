// Package color converts hex color notation into Sheets API colors.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// Parse converts "#RRGGBB", "RRGGBB" or the short form "#RGB" into a Sheets
// color with channels in [0, 1].
func Parse(hex string) (*sheets.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}
	return &sheets.Color{
		Red:   float64((v>>16)&0xff) / 255.0,
		Green: float64((v>>8)&0xff) / 255.0,
		Blue:  float64(v&0xff) / 255.0,
		// Zero channels are meaningful (black).
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}, nil
}

// Optional is Parse for optional inputs: an empty string yields (nil, nil).
func Optional(hex string) (*sheets.Color, error) {
	if hex == "" {
		return nil, nil
	}
	return Parse(hex)
}
