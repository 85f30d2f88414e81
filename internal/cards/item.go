package cards

import (
	"fmt"

	"parrot/internal/fingerprint"
)

// Item is one surviving input row together with its derived identity.
// Items are immutable once built; the emitted output row is a copy with the
// sound reference appended.
type Item struct {
	// Seq is the 0-based position of the row in the source file. Output
	// ordering is governed by Seq, never by hash order.
	Seq          int
	Fields       []string
	SentenceHash uint64
	RowHash      uint64
	// AudioFile is the basename of the audio artifact for this item's
	// sentence. Rows sharing a sentence share the same filename.
	AudioFile string
}

// NewItem derives an item from a parsed row. The row must be non-empty; the
// reader enforces that before rows reach this point.
func NewItem(seq int, fields []string, audioExt string) Item {
	sentenceHash := fingerprint.Sentence(fields)
	return Item{
		Seq:          seq,
		Fields:       fields,
		SentenceHash: sentenceHash,
		RowHash:      fingerprint.Row(fields),
		AudioFile:    AudioFilename(sentenceHash, audioExt),
	}
}

// AudioFilename maps a sentence fingerprint to its deterministic artifact
// name. This is a pure function: same sentence, same file, across runs.
func AudioFilename(sentenceHash uint64, audioExt string) string {
	return fmt.Sprintf("parrot_%d.%s", sentenceHash, audioExt)
}

// OutputRow returns the item's fields with the sound reference appended in
// the form Anki expects.
func (it Item) OutputRow() []string {
	row := make([]string, 0, len(it.Fields)+1)
	row = append(row, it.Fields...)
	return append(row, fmt.Sprintf("[sound:%s]", it.AudioFile))
}

// Sentence returns the text that needs synthesis for this item.
func (it Item) Sentence() string {
	return it.Fields[0]
}
