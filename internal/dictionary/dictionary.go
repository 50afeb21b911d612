// Package dictionary holds the built-in translation corpus. The corpus is loaded
// once at startup and is read-only afterwards, so lookups are safe to share across
// request goroutines without locking.
package dictionary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lingobridge/api/internal/platform/textutil"
)

//go:embed seed.json
var seedData []byte

// Bucket maps normalized source phrases to their translations for one ordered
// language pair.
type Bucket map[string]string

// Index is the immutable in-memory dictionary, keyed by pair key ("en-fr").
type Index struct {
	buckets map[string]Bucket
	pairs   []string
}

// NewIndex builds an Index from raw pair data. Pair keys and source phrases are
// normalized; later duplicates of the same normalized phrase win.
func NewIndex(data map[string]map[string]string) *Index {
	buckets := make(map[string]Bucket, len(data))
	for pair, entries := range data {
		key := textutil.NormalizeKey(pair)
		if key == "" {
			continue
		}
		bucket := make(Bucket, len(entries))
		for source, target := range entries {
			normalized := textutil.NormalizeKey(source)
			if normalized == "" {
				continue
			}
			bucket[normalized] = target
		}
		buckets[key] = bucket
	}

	pairs := make([]string, 0, len(buckets))
	for key := range buckets {
		pairs = append(pairs, key)
	}
	sort.Strings(pairs)

	return &Index{buckets: buckets, pairs: pairs}
}

// Load reads a dictionary file in the seed JSON layout. When path is empty or the
// file does not exist the compiled-in seed corpus is used instead.
func Load(path string) (*Index, error) {
	raw := seedData
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			raw = data
		case os.IsNotExist(err):
			// fall back to the embedded corpus
		default:
			return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
		}
	}

	var parsed map[string]map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("dictionary: parse corpus: %w", err)
	}
	return NewIndex(parsed), nil
}

// SupportedPairs returns the sorted pair keys the index can translate.
func (i *Index) SupportedPairs() []string {
	out := make([]string, len(i.pairs))
	copy(out, i.pairs)
	return out
}

// HasPair reports whether the index carries a bucket for the pair key.
func (i *Index) HasPair(pairKey string) bool {
	_, ok := i.buckets[textutil.NormalizeKey(pairKey)]
	return ok
}

// Lookup returns the translation for an already normalized source phrase.
func (i *Index) Lookup(pairKey, source string) (string, bool) {
	bucket, ok := i.buckets[textutil.NormalizeKey(pairKey)]
	if !ok {
		return "", false
	}
	target, ok := bucket[textutil.NormalizeKey(source)]
	return target, ok
}

// Sources returns the source phrases of the pair's bucket, for fuzzy candidate
// scans. The order is unspecified.
func (i *Index) Sources(pairKey string) []string {
	bucket, ok := i.buckets[textutil.NormalizeKey(pairKey)]
	if !ok {
		return nil
	}
	sources := make([]string, 0, len(bucket))
	for source := range bucket {
		sources = append(sources, source)
	}
	return sources
}
