package shared

import "context"

// MaxHierarchyDepth caps ancestor walks over self-referencing trees.
// A chain longer than this is treated as invalid input rather than
// walked to exhaustion.
const MaxHierarchyDepth = 32

// ParentResolver returns the parent id of a node, or nil for a root.
type ParentResolver func(ctx context.Context, id uint) (*uint, error)

// ValidateReparent checks that attaching nodeID under newParentID keeps
// the tree acyclic. It walks up from newParentID and fails if the walk
// reaches nodeID or exceeds MaxHierarchyDepth.
func ValidateReparent(ctx context.Context, resolve ParentResolver, nodeID, newParentID uint) error {
	if nodeID == newParentID {
		return NewDomainError("VALIDATION_ERROR", "Node cannot be its own parent")
	}
	current := newParentID
	for depth := 0; depth < MaxHierarchyDepth; depth++ {
		parent, err := resolve(ctx, current)
		if err != nil {
			return err
		}
		if parent == nil {
			return nil
		}
		if *parent == nodeID {
			return NewDomainError("VALIDATION_ERROR", "Move would create a cycle")
		}
		current = *parent
	}
	return NewDomainError("VALIDATION_ERROR", "Hierarchy exceeds maximum depth")
}
