package fs

import (
	"encoding/json"
	"os"

	"github.com/fwojciec/sitesnap"
)

// ReadStructure loads a structure file.
// Missing, unreadable, or malformed files return EINVALID.
func ReadStructure(path string) (sitesnap.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "read structure: %v", err)
	}
	var s sitesnap.Structure
	if err := json.Unmarshal(data, &s); err != nil {
		if sitesnap.ErrorCode(err) == sitesnap.EINVALID {
			return nil, err
		}
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid structure: %v", err)
	}
	return s, nil
}

// WriteStructure writes s to path as indented JSON.
func WriteStructure(path string, s sitesnap.Structure) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
