package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState is small, best-effort UI state restored on the next launch. It lives
// next to the data so each checklist directory remembers its own.
type TUIState struct {
	Version int `json:"version"`

	// SelectedID is the item under the cursor when the TUI last exited.
	SelectedID string `json:"selectedId,omitempty"`
}

func tuiStatePath(dir string) string {
	return filepath.Join(dir, tuiStateFileName)
}

// LoadTUIState never fails on missing or unreadable state; it returns a
// zero state instead. Only an empty dir is an error.
func LoadTUIState(dir string) (*TUIState, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("tui state: missing dir")
	}
	b, err := os.ReadFile(tuiStatePath(dir))
	if err != nil {
		return &TUIState{Version: 1}, nil
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil || st.Version == 0 {
		return &TUIState{Version: 1}, nil
	}
	return &st, nil
}

func SaveTUIState(dir string, st *TUIState) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("tui state: missing dir")
	}
	if st == nil {
		st = &TUIState{}
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(dir, tuiStateFileName, append(b, '\n'))
}
