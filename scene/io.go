package scene

import (
	"encoding/json"
	"io"
)

// LoadScene decodes a SceneDocument from r.
func LoadScene(r io.Reader) (SceneDocument, error) {
	var doc SceneDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return SceneDocument{}, err
	}
	return doc, nil
}

// SaveScene encodes doc to w, indented for human-readable diffs.
func SaveScene(w io.Writer, doc SceneDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// LoadSettings decodes a Settings document from r.
func LoadSettings(r io.Reader) (Settings, error) {
	var s Settings
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SaveState encodes a StateExport to w, indented for human-readable diffs.
func SaveState(w io.Writer, state StateExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
