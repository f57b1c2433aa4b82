package patscan

import (
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/projectdiscovery/gologger"

	"github.com/jclyne/pattern-scanner/dfa"
	"github.com/jclyne/pattern-scanner/expr"
	"github.com/jclyne/pattern-scanner/prefilter"
	"github.com/jclyne/pattern-scanner/syntax"
)

// Serialization errors.
var (
	// ErrBadMagic reports a blob that is not a serialized context.
	ErrBadMagic = errors.New("patscan: not a serialized scanner context")

	// ErrSchemaVersion reports a schema id mismatch between writer and
	// reader.
	ErrSchemaVersion = errors.New("patscan: unsupported context schema version")
)

// schemaVersion is bumped whenever the serialized layout changes.
const schemaVersion uint32 = 1

var ctxtMagic = [4]byte{'P', 'S', 'C', 'N'}

// ctxtBlob is the gob payload of a serialized context.
type ctxtBlob struct {
	Automaton *dfa.Image
	Index     map[uint32][]Pattern
	Patterns  []Pattern
}

// Save writes the compiled context as an opaque versioned binary blob.
func (ctxt *ScannerCtxt) Save(w io.Writer) error {
	if _, err := w.Write(ctxtMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, schemaVersion); err != nil {
		return err
	}

	blob := ctxtBlob{
		Automaton: ctxt.dfa.Snapshot(),
		Index:     make(map[uint32][]Pattern, len(ctxt.index)),
		Patterns:  ctxt.patterns,
	}
	for id, pats := range ctxt.index {
		blob.Index[uint32(id)] = pats
	}
	if err := gob.NewEncoder(w).Encode(&blob); err != nil {
		return fmt.Errorf("patscan: encoding context: %w", err)
	}
	return nil
}

// LoadContext restores a context previously written by Save. A magic or
// schema mismatch is rejected with ErrBadMagic or ErrSchemaVersion; decode
// failures surface as errors and no partial context is returned.
func LoadContext(r io.Reader) (*ScannerCtxt, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("patscan: reading context header: %w", err)
	}
	if magic != ctxtMagic {
		return nil, ErrBadMagic
	}
	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("patscan: reading context version: %w", err)
	}
	if version != schemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaVersion, version, schemaVersion)
	}

	var blob ctxtBlob
	if err := gob.NewDecoder(r).Decode(&blob); err != nil {
		return nil, fmt.Errorf("patscan: decoding context: %w", err)
	}
	automaton, err := dfa.FromImage(blob.Automaton)
	if err != nil {
		return nil, err
	}

	ctxt := &ScannerCtxt{
		dfa:      automaton,
		index:    make(map[dfa.StateID][]Pattern, len(blob.Index)),
		patterns: blob.Patterns,
	}
	for id, pats := range blob.Index {
		ctxt.index[dfa.StateID(id)] = pats
	}
	ctxt.pre = rebuildPrefilter(blob.Patterns)
	return ctxt, nil
}

// rebuildPrefilter re-parses the stored patterns to recover the literal
// prefilter; the regexes parsed when the context was built, so failures
// here only cost the fast path.
func rebuildPrefilter(patterns []Pattern) *prefilter.Prefilter {
	var vector expr.Vector
	for _, p := range patterns {
		e, err := syntax.Parse(p.Regex)
		if err != nil {
			gologger.Warning().Msgf("prefilter disabled: pattern %s no longer parses: %v", p.ID, err)
			return nil
		}
		vector = append(vector, e)
	}
	return prefilter.FromVector(vector)
}
