package models

// Word represents an English-Spanish vocabulary pair to be learned.
// The English side is the canonical key: it is trimmed and lowercased
// at load time and identifies the word's progress entry.
type Word struct {
	English string `json:"english" db:"english"`
	Spanish string `json:"spanish" db:"spanish"`
}
