package utils

import (
	"os"
)

// IsFileEmpty reports whether the file at path exists and has zero size.
func IsFileEmpty(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.Size() == 0
}
