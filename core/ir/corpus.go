package ir

// Corpus is the complete scripture-verse mapping for one translation.
// It keeps a flat map keyed by VerseKey rather than three nested maps, so
// there is no ambiguity about missing intermediate levels, and it records
// insertion order so downstream consumers see a deterministic key sequence
// for a fixed input.
//
// A Corpus is immutable by convention once a parser returns it: the
// alignment engine and the persistence layer only read.
type Corpus struct {
	// TranslationID identifies the owning translation (e.g., "KJV", "NIV").
	TranslationID string

	keys  []VerseKey
	texts map[VerseKey]string
}

// NewCorpus creates an empty corpus owned by the given translation.
func NewCorpus(translationID string) *Corpus {
	return &Corpus{
		TranslationID: translationID,
		texts:         make(map[VerseKey]string),
	}
}

// Set stores the text for a key. Duplicate keys within one source follow
// last-write-wins: the later text overwrites the earlier one and the key
// keeps its original position in the order.
func (c *Corpus) Set(key VerseKey, text string) {
	if _, ok := c.texts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.texts[key] = text
}

// Get returns the text for a key. Absence means "no verse", not empty text.
func (c *Corpus) Get(key VerseKey) (string, bool) {
	text, ok := c.texts[key]
	return text, ok
}

// Len returns the number of verses in the corpus.
func (c *Corpus) Len() int {
	return len(c.keys)
}

// Keys returns the verse keys in insertion order. The returned slice is
// shared; callers must treat it as read-only.
func (c *Corpus) Keys() []VerseKey {
	return c.keys
}

// Books returns the distinct book names in first-encounter order.
func (c *Corpus) Books() []string {
	seen := make(map[string]bool)
	var books []string
	for _, k := range c.keys {
		if !seen[k.Book] {
			seen[k.Book] = true
			books = append(books, k.Book)
		}
	}
	return books
}

// Nested returns the {book: {chapter: {verse: text}}} interchange shape
// consumed by the persistence layer and out-of-scope training code.
func (c *Corpus) Nested() map[string]map[int]map[int]string {
	nested := make(map[string]map[int]map[int]string)
	for _, k := range c.keys {
		chapters, ok := nested[k.Book]
		if !ok {
			chapters = make(map[int]map[int]string)
			nested[k.Book] = chapters
		}
		verses, ok := chapters[k.Chapter]
		if !ok {
			verses = make(map[int]string)
			chapters[k.Chapter] = verses
		}
		verses[k.Verse] = c.texts[k]
	}
	return nested
}
