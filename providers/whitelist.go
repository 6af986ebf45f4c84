package providers

import (
	"errors"
	"io/fs"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// WhitelistProvider stores the classes users are allowed to register for.
type WhitelistProvider struct {
	common *CommonProvider
	mutex  *sync.Mutex
}

func NewWhitelistProvider(directory string) (*WhitelistProvider, error) {
	common, err := newCommonProvider(directory, "class_whitelist")

	if err != nil {
		return nil, err
	}

	return &WhitelistProvider{common: common, mutex: &sync.Mutex{}}, nil
}

// UpdateWhitelist adds the classes and only writes when something was new.
func (w *WhitelistProvider) UpdateWhitelist(classes []string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	whitelist, err := w.read()

	if err != nil {
		return err
	}

	changed := false

	for _, class := range classes {
		if _, ok := whitelist[class]; !ok {
			whitelist[class] = struct{}{}
			changed = true
		}
	}

	if !changed {
		return nil
	}

	data, err := json.MarshalIndent(sortedKeys(whitelist), "", "  ")

	if err != nil {
		return err
	}

	return w.common.saveAllDataToStorage(data)
}

func (w *WhitelistProvider) GetWhitelist() ([]string, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	whitelist, err := w.read()

	if err != nil {
		return nil, err
	}

	return sortedKeys(whitelist), nil
}

func (w *WhitelistProvider) IsWhitelisted(class string) (bool, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	whitelist, err := w.read()

	if err != nil {
		return false, err
	}

	_, ok := whitelist[class]

	return ok, nil
}

func (w *WhitelistProvider) read() (map[string]struct{}, error) {
	whitelist := map[string]struct{}{}

	data, err := w.common.getAllDataFromStorage()

	if errors.Is(err, fs.ErrNotExist) {
		return whitelist, nil
	}

	if err != nil {
		return nil, err
	}

	var classes []string

	if err = json.Unmarshal(data, &classes); err != nil {
		return nil, err
	}

	for _, class := range classes {
		whitelist[class] = struct{}{}
	}

	return whitelist, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))

	for key := range set {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
