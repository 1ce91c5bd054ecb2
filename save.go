package gitredate

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/memory"
)

// GetHash calculates the hash of a commit without saving it anywhere.
func GetHash(c *object.Commit) (*plumbing.Hash, error) {
	obj := memory.NewStorage().NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		return nil, fmt.Errorf("failed to encode commit: %w", err)
	}

	h := obj.Hash()

	return &h, nil
}

// updateHashAndSave encodes the commit into s, and sets the hash on the
// commit to the hash of the encoded object.
func updateHashAndSave(ctx context.Context, c *object.Commit, s storer.Storer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	obj := s.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		return fmt.Errorf("failed to encode commit: %w", err)
	}

	c.Hash = obj.Hash()

	if _, err := s.SetEncodedObject(obj); err != nil {
		return fmt.Errorf("failed to store commit %s: %w", c.Hash.String(), err)
	}

	return nil
}
