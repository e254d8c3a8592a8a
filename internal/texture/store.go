package texture

import "fmt"

// Store holds the wall textures of a level. Slot i textures cell code i+1.
type Store struct {
	size     int
	textures []*Texture
}

// NewStore builds a store of textures that all share the given size.
func NewStore(size int, textures ...*Texture) (*Store, error) {
	for i, t := range textures {
		if t == nil {
			return nil, fmt.Errorf("texture slot %d is nil", i)
		}
		if t.Size() != size {
			return nil, fmt.Errorf("%w: texture %s is %dx%d, want %dx%d", ErrDimension, t.Name, t.Size(), t.Size(), size, size)
		}
	}
	return &Store{size: size, textures: textures}, nil
}

// Size returns the shared texture side length.
func (s *Store) Size() int { return s.size }

// Len returns the number of textures.
func (s *Store) Len() int { return len(s.textures) }

// Get returns the texture in slot i.
func (s *Store) Get(i int) (*Texture, bool) {
	if i < 0 || i >= len(s.textures) {
		return nil, false
	}
	return s.textures[i], true
}

// ForCell returns the texture for a wall code. Open floor has none.
func (s *Store) ForCell(code int) (*Texture, bool) {
	return s.Get(code - 1)
}
