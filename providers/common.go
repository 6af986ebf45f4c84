package providers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type CommonProvider struct {
	filename string
}

func newCommonProvider(directory string, dataName string) (*CommonProvider, error) {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		logrus.Infoln("Creation a new directory for storage: ", directory)

		err = os.MkdirAll(directory, os.ModePerm)

		if err != nil {
			return nil, err
		}
	}

	return &CommonProvider{filename: filepath.Join(directory, dataName+".json")}, nil
}

// getAllDataFromStorage returns fs.ErrNotExist when nothing was saved yet.
func (c *CommonProvider) getAllDataFromStorage() ([]byte, error) {
	return os.ReadFile(c.filename)
}

// saveAllDataToStorage replaces the file through a rename so readers never see half a write.
func (c *CommonProvider) saveAllDataToStorage(data []byte) error {
	tmp := c.filename + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, c.filename)
}

func (c *CommonProvider) removeStorage() error {
	err := os.Remove(c.filename)

	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
