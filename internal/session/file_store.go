package session

import (
	"context"

	"github.com/Fashion-Store/Aradaa/internal/localstore"
)

// FileStore saves the session as a JSON document in a local directory.
type FileStore struct {
	dir *localstore.Dir
	key string
}

func NewFileStore(dir *localstore.Dir, key string) *FileStore {
	if key == "" {
		key = "session"
	}
	return &FileStore{dir: dir, key: key}
}

func (f *FileStore) Load(context.Context) (State, error) {
	var st State
	if _, err := f.dir.Get(f.key, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

func (f *FileStore) Save(_ context.Context, st State) error {
	if st.User == nil {
		return f.dir.Delete(f.key)
	}
	return f.dir.Put(f.key, st)
}
