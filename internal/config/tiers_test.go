package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTiers(t *testing.T) {
	tiers, err := LoadTiers("")
	if err != nil {
		t.Fatalf("LoadTiers(\"\") error = %v", err)
	}
	counts := map[string]int{}
	for _, info := range tiers {
		counts[info.Tier]++
	}
	if counts["core"] != 6 || counts["core"]+counts["extended"] != 10 || len(tiers) != 34 {
		t.Errorf("tier counts = %v (total %d), want 6 core, 10 through extended, 34 total", counts, len(tiers))
	}
	if got := tiers["sheets_share"]; got.Service != "drive" || got.Tier != "core" {
		t.Errorf("sheets_share = %+v", got)
	}
}

func TestParseTiersDuplicate(t *testing.T) {
	data := []byte("services:\n  sheets:\n    core: [a]\n    complete: [a]\n")
	if _, err := ParseTiers(data); err == nil {
		t.Error("duplicate tool should be rejected")
	}
}

func TestLoadTiersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	if err := os.WriteFile(path, []byte("services:\n  sheets:\n    core: [sheets_get_data]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tiers, err := LoadTiers(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tiers) != 1 || tiers["sheets_get_data"].Tier != "core" {
		t.Errorf("tiers = %v", tiers)
	}
	if _, err := LoadTiers(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing tier file should fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("services: [oops"), 0o600)
	if _, err := LoadTiers(bad); err == nil {
		t.Error("malformed tier file should fail")
	}
}

func TestTierLevel(t *testing.T) {
	if !(TierLevel("core") < TierLevel("extended") && TierLevel("extended") < TierLevel("complete")) {
		t.Error("tier levels must be ordered core < extended < complete")
	}
	if TierLevel("bogus") != 0 {
		t.Error("unknown tier must be 0")
	}
}
