package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewIndexNormalizesKeysAndPhrases(t *testing.T) {
	idx := NewIndex(map[string]map[string]string{
		"EN-FR": {
			"  Hello World ": "bonjour le monde",
			"":               "ignored",
		},
		" ": {"x": "y"},
	})

	pairs := idx.SupportedPairs()
	if len(pairs) != 1 || pairs[0] != "en-fr" {
		t.Fatalf("SupportedPairs() = %v, want [en-fr]", pairs)
	}

	got, ok := idx.Lookup("en-fr", "hello world")
	if !ok || got != "bonjour le monde" {
		t.Fatalf("Lookup = %q, %v; want bonjour le monde, true", got, ok)
	}

	if _, ok := idx.Lookup("en-fr", ""); ok {
		t.Fatal("empty phrase should not be indexed")
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	idx := NewIndex(map[string]map[string]string{
		"en-fr": {"hello": "bonjour"},
	})

	got, ok := idx.Lookup("EN-FR", "  HELLO ")
	if !ok || got != "bonjour" {
		t.Fatalf("Lookup = %q, %v; want bonjour, true", got, ok)
	}
}

func TestLookupUnknownPair(t *testing.T) {
	idx := NewIndex(map[string]map[string]string{
		"en-fr": {"hello": "bonjour"},
	})

	if idx.HasPair("en-de") {
		t.Fatal("HasPair(en-de) = true, want false")
	}
	if _, ok := idx.Lookup("en-de", "hello"); ok {
		t.Fatal("Lookup on unknown pair should miss")
	}
	if sources := idx.Sources("en-de"); sources != nil {
		t.Fatalf("Sources(en-de) = %v, want nil", sources)
	}
}

func TestLoadEmbeddedSeed(t *testing.T) {
	idx, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !idx.HasPair("en-fr") {
		t.Fatalf("seed corpus missing en-fr, pairs: %v", idx.SupportedPairs())
	}
	got, ok := idx.Lookup("en-fr", "hello")
	if !ok || got != "bonjour" {
		t.Fatalf("Lookup(en-fr, hello) = %q, %v", got, ok)
	}
}

func TestLoadFileOverridesSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	content := `{"en-de": {"hello": "hallo"}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	idx, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if idx.HasPair("en-fr") {
		t.Fatal("file corpus should replace the embedded seed")
	}
	got, ok := idx.Lookup("en-de", "hello")
	if !ok || got != "hallo" {
		t.Fatalf("Lookup(en-de, hello) = %q, %v", got, ok)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	idx, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !idx.HasPair("en-fr") {
		t.Fatal("missing file should fall back to the embedded seed")
	}
}

func TestLoadRejectsMalformedCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject malformed JSON")
	}
}
