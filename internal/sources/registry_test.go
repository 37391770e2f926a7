package sources

import "testing"

func TestListActive(t *testing.T) {
	active := List(true)
	all := List(false)

	if len(active) >= len(all) {
		t.Errorf("active (%d) should be a strict subset of all (%d)", len(active), len(all))
	}
	for id, src := range active {
		if !src.Enabled {
			t.Errorf("source %s listed active but not enabled", id)
		}
	}

	// Captcha-walled outlets stay in the table but never run.
	for _, id := range []string{"reuters", "latimes"} {
		src, ok := all[id]
		if !ok {
			t.Fatalf("source %s missing from table", id)
		}
		if src.Enabled || !src.Captcha {
			t.Errorf("source %s: enabled=%v captcha=%v", id, src.Enabled, src.Captcha)
		}
		if _, ok := active[id]; ok {
			t.Errorf("source %s should not be active", id)
		}
	}
}

func TestProfilesWellFormed(t *testing.T) {
	for id, src := range List(false) {
		if src.ID != id {
			t.Errorf("source %s: ID mismatch %q", id, src.ID)
		}
		if src.SearchURL == "" || src.Domain == "" {
			t.Errorf("source %s: missing search URL or domain", id)
		}
		if src.Enabled && len(src.Listing) == 0 {
			t.Errorf("source %s: active but has no listing rules", id)
		}
		for _, rule := range src.Extraction {
			if rule.Column == "" || rule.Tag == "" {
				t.Errorf("source %s: malformed extraction rule %+v", id, rule)
			}
		}
	}
}

func TestListReturnsFreshCopies(t *testing.T) {
	first := List(false)
	first["apnews"] = Profile{ID: "mutated"}

	second := List(false)
	if second["apnews"].ID != "apnews" {
		t.Error("mutating a returned table leaked into the registry")
	}
}
