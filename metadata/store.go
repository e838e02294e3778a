package metadata

import "imagefilter/types"

// Store indexes metadata records by path. It is read-only once built.
type Store struct {
	metas      []types.ImageMeta
	index      map[string]int
	duplicates int
}

// NewStore builds a store from loaded records. When a path appears more than
// once the last loaded record wins; it takes the slot of the first occurrence.
func NewStore(metas []types.ImageMeta) *Store {
	s := &Store{
		metas: make([]types.ImageMeta, 0, len(metas)),
		index: make(map[string]int, len(metas)),
	}

	for _, meta := range metas {
		if i, ok := s.index[meta.Path]; ok {
			s.metas[i] = meta
			s.duplicates++
			continue
		}
		s.index[meta.Path] = len(s.metas)
		s.metas = append(s.metas, meta)
	}
	return s
}

// Find returns the record for path
func (s *Store) Find(path string) (types.ImageMeta, bool) {
	i, ok := s.index[path]
	if !ok {
		return types.ImageMeta{}, false
	}
	return s.metas[i], true
}

// All returns a copy of the records, one per distinct path
func (s *Store) All() []types.ImageMeta {
	out := make([]types.ImageMeta, len(s.metas))
	copy(out, s.metas)
	return out
}

// Len returns the number of distinct paths
func (s *Store) Len() int { return len(s.metas) }

// Duplicates returns how many loaded records were replaced by a later one
func (s *Store) Duplicates() int { return s.duplicates }

// FindMeta returns the first record in metas whose path equals path
func FindMeta(metas []types.ImageMeta, path string) (types.ImageMeta, bool) {
	for _, meta := range metas {
		if meta.Path == path {
			return meta, true
		}
	}
	return types.ImageMeta{}, false
}
