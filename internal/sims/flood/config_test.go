package flood

import "testing"

func TestConfigKeysAreAllConsumed(t *testing.T) {
	def := DefaultConfig()
	for _, key := range ConfigKeys() {
		got := FromMap(map[string]string{key: "7"})
		if got == def {
			t.Fatalf("key %q had no effect on the config", key)
		}
	}
}

func TestIsConfigKeyRejectsUnknown(t *testing.T) {
	for _, key := range []string{"", "gravity", "warmup_fil_steps", "DT"} {
		if IsConfigKey(key) {
			t.Fatalf("key %q should be unknown", key)
		}
	}
	if !IsConfigKey("warmup_fill_steps") {
		t.Fatal("warmup_fill_steps should be a known key")
	}
}

func TestFromMapIgnoresUnparsableValues(t *testing.T) {
	def := DefaultConfig()
	got := FromMap(map[string]string{
		"dt":                "zero",
		"warmup_fill_steps": "-4",
	})
	if got != def {
		t.Fatalf("unparsable values changed the config: %+v", got)
	}
}
