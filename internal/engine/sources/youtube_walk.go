package sources

// Walk visits every mapping node of tree in pre-order: a mapping is passed to
// visit before any of its children. Mapping values are walked in key order,
// sequence elements in index order. Scalars and sequences are never visited.
func Walk(tree *Node, visit func(*Node)) {
	switch tree.Kind() {
	case KindMapping:
		visit(tree)
		for pair := tree.fields.Oldest(); pair != nil; pair = pair.Next() {
			Walk(pair.Value, visit)
		}
	case KindSequence:
		for _, it := range tree.items {
			Walk(it, visit)
		}
	}
}
