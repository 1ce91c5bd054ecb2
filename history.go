package gitredate

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// GetLinearHistory walks the first parents from the head commit and returns
// the history oldest commit first, with the head commit as the last element.
//
// roots can be optionally set so the walk stops once one of those commits is
// seen - that commit is included in the result and becomes the first element.
func GetLinearHistory(
	ctx context.Context,
	head *object.Commit,
	roots HashSet,
) ([]*object.Commit, error) {
	if head == nil {
		return nil, nil
	}

	if roots == nil {
		roots = make(HashSet)
	}

	result := make([]*object.Commit, 0)

	c := head

walkloop:
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result = append(result, c)

		if _, isroot := roots[c.Hash]; isroot {
			break walkloop
		}
		if c.NumParents() == 0 {
			break walkloop
		}

		p, err := c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("cannot get parent for %s: %w", c.Hash.String(), err)
		}

		c = p
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result, nil
}

// Summary returns the first line of the commit message.
func Summary(c *object.Commit) string {
	summary, _, _ := strings.Cut(c.Message, "\n")

	return summary
}
