package router

import (
	"strings"
)

func longestCommonPrefix(a, b string) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[i] == b[i] {
		i++
	}
	return i
}

// findWildcard searches for a wildcard segment and checks the name for
// invalid characters. It returns -1 as index if no wildcard was found.
func findWildcard(path string) (wildcard string, i int, valid bool) {
	// Find start
	for start := 0; start < len(path); start++ {
		c := path[start]
		// A wildcard starts with ':' (param) or '*' (catch-all)
		if c != ':' && c != '*' {
			continue
		}

		// Find end and check for invalid characters
		valid = true
		for end := start + 1; end < len(path); end++ {
			switch path[end] {
			case '/':
				return path[start:end], start, valid
			case ':', '*':
				valid = false
			}
		}
		return path[start:], start, valid
	}
	return "", -1, false
}

type nodeType uint8

const (
	static nodeType = iota
	root
	param
	catchAll
)

// node is one vertex of the per-method radix tree. Static children are
// dispatched via the first byte of their path, recorded in indices in the
// same order as children. A node has at most one wildcard (param or
// catch-all) child; if present it is the only child and wildChild is set.
type node struct {
	path      string
	indices   string
	wildChild bool
	nType     nodeType
	priority  uint32
	children  []*node
	handle    Handle
}

// incrementChildPrio increments the priority of the given child and reorders
// the children if necessary. It returns the new position of the child.
func (n *node) incrementChildPrio(pos int) int {
	cs := n.children
	cs[pos].priority++
	prio := cs[pos].priority

	// Adjust position (move to front)
	newPos := pos
	for ; newPos > 0 && cs[newPos-1].priority < prio; newPos-- {
		// Swap node positions
		cs[newPos-1], cs[newPos] = cs[newPos], cs[newPos-1]
	}

	// Build new index char string
	if newPos != pos {
		n.indices = n.indices[:newPos] + // unchanged prefix, might be empty
			n.indices[pos:pos+1] + // the index char we move
			n.indices[newPos:pos] + n.indices[pos+1:] // rest without char at 'pos'
	}

	return newPos
}

// addRoute adds a node with the given handle to the path.
// Not concurrency-safe.
func (n *node) addRoute(path string, handle Handle) {
	fullPath := path
	n.priority++

	// Empty tree
	if n.path == "" && n.indices == "" {
		n.insertChild(path, fullPath, handle)
		n.nType = root
		return
	}

walk:
	for {
		// Find the longest common prefix.
		// This also implies that the common prefix contains no ':' or '*'
		// since the existing key can't contain those chars.
		i := longestCommonPrefix(path, n.path)

		// Split edge
		if i < len(n.path) {
			child := node{
				path:      n.path[i:],
				wildChild: n.wildChild,
				nType:     static,
				indices:   n.indices,
				children:  n.children,
				handle:    n.handle,
				priority:  n.priority - 1,
			}

			n.children = []*node{&child}
			n.indices = string([]byte{n.path[i]})
			n.path = path[:i]
			n.handle = nil
			n.wildChild = false
		}

		// Make new node a child of this node
		if i < len(path) {
			path = path[i:]

			if n.wildChild {
				n = n.children[0]
				n.priority++

				// Check if the wildcard matches
				if len(path) >= len(n.path) && n.path == path[:len(n.path)] &&
					// Adding a child to a catchAll is not possible
					n.nType != catchAll &&
					// Check for longer wildcard, e.g. :name and :names
					(len(n.path) >= len(path) || path[len(n.path)] == '/') {
					continue walk
				}

				// Wildcard conflict
				pathSeg := path
				if n.nType != catchAll {
					pathSeg = strings.SplitN(pathSeg, "/", 2)[0]
				}
				prefix := fullPath[:strings.Index(fullPath, pathSeg)] + n.path
				panic("'" + pathSeg +
					"' in new path '" + fullPath +
					"' conflicts with existing wildcard '" + n.path +
					"' in existing prefix '" + prefix + "'")
			}

			idxc := path[0]

			// '/' after param
			if n.nType == param && idxc == '/' && len(n.children) == 1 {
				n = n.children[0]
				n.priority++
				continue walk
			}

			// Check if a child with the next path byte exists
			for i, c := range []byte(n.indices) {
				if c == idxc {
					i = n.incrementChildPrio(i)
					n = n.children[i]
					continue walk
				}
			}

			// Otherwise insert it
			if idxc != ':' && idxc != '*' {
				n.indices += string([]byte{idxc})
				child := &node{}
				n.children = append(n.children, child)
				n.incrementChildPrio(len(n.indices) - 1)
				n = child
			}
			n.insertChild(path, fullPath, handle)
			return
		}

		// Otherwise add handle to current node
		if n.handle != nil {
			panic("a handle is already registered for path '" + fullPath + "'")
		}
		n.handle = handle
		return
	}
}

func (n *node) insertChild(path, fullPath string, handle Handle) {
	for {
		// Find prefix until first wildcard
		wildcard, i, valid := findWildcard(path)
		if i < 0 { // No wildcard found
			break
		}

		// The wildcard name must not contain ':' and '*'
		if !valid {
			panic("only one wildcard per path segment is allowed, has: '" +
				wildcard + "' in path '" + fullPath + "'")
		}

		// Check if the wildcard has a name
		if len(wildcard) < 2 {
			panic("wildcards must be named with a non-empty name in path '" + fullPath + "'")
		}

		// Check if this node has existing children which would be
		// unreachable if we insert the wildcard here
		if len(n.children) > 0 {
			panic("wildcard segment '" + wildcard +
				"' conflicts with existing children in path '" + fullPath + "'")
		}

		if wildcard[0] == ':' { // param
			if i > 0 {
				// Insert prefix before the current wildcard
				n.path = path[:i]
				path = path[i:]
			}

			n.wildChild = true
			child := &node{
				nType: param,
				path:  wildcard,
			}
			n.children = []*node{child}
			n = child
			n.priority++

			// If the path doesn't end with the wildcard, then there
			// will be another non-wildcard subpath starting with '/'
			if len(wildcard) < len(path) {
				path = path[len(wildcard):]
				child := &node{
					priority: 1,
				}
				n.children = []*node{child}
				n = child
				continue
			}

			// Otherwise we're done. Insert the handle in the new leaf.
			n.handle = handle
			return
		}

		// catchAll
		if i+len(wildcard) != len(path) {
			panic("catch-all routes are only allowed at the end of the path in path '" + fullPath + "'")
		}

		if len(n.path) > 0 && n.path[len(n.path)-1] == '/' {
			panic("catch-all conflicts with existing handle for the path segment root in path '" + fullPath + "'")
		}

		// Currently fixed width 1 for '/'
		i--
		if path[i] != '/' {
			panic("no / before catch-all in path '" + fullPath + "'")
		}

		n.path = path[:i]

		// First node: catchAll node with empty path
		child := &node{
			wildChild: true,
			nType:     catchAll,
		}
		n.children = []*node{child}
		n.indices = "/"
		n = child
		n.priority++

		// Second node: node holding the variable
		child = &node{
			path:     path[i:],
			nType:    catchAll,
			handle:   handle,
			priority: 1,
		}
		n.children = []*node{child}

		return
	}

	// If no wildcard was found, simply insert the path and handle
	n.path = path
	n.handle = handle
}

// getValue returns the handle registered with the given path (key). The
// values of wildcards are saved to a Params slice, in pattern order.
// If no handle can be found, a TSR (trailing slash redirect) recommendation
// is made if a handle exists with an extra (without the) trailing slash for
// the given path.
func (n *node) getValue(path string) (handle Handle, ps Params, tsr bool) {
walk: // outer loop for walking the tree
	for {
		prefix := n.path
		if len(path) > len(prefix) {
			if path[:len(prefix)] == prefix {
				path = path[len(prefix):]

				// If this node does not have a wildcard (param or catchAll)
				// child, we can just look up the next child node and continue
				// to walk down the tree.
				if !n.wildChild {
					idxc := path[0]
					for i, c := range []byte(n.indices) {
						if c == idxc {
							n = n.children[i]
							continue walk
						}
					}

					// Nothing found.
					// We can recommend to redirect to the same URL without a
					// trailing slash if a leaf exists for that path.
					tsr = path == "/" && n.handle != nil
					return
				}

				// Handle wildcard child
				n = n.children[0]
				switch n.nType {
				case param:
					// Find param end (either '/' or path end)
					end := 0
					for end < len(path) && path[end] != '/' {
						end++
					}

					// Save param value
					ps = append(ps, Param{Key: n.path[1:], Value: path[:end]})

					// We need to go deeper!
					if end < len(path) {
						if len(n.children) > 0 {
							path = path[end:]
							n = n.children[0]
							continue walk
						}

						// ... but we can't
						tsr = len(path) == end+1
						return
					}

					if handle = n.handle; handle != nil {
						return
					}
					if len(n.children) == 1 {
						// No handle found. Check if a handle for this path + a
						// trailing slash exists for TSR recommendation.
						n = n.children[0]
						tsr = (n.path == "/" && n.handle != nil) ||
							(n.path == "" && n.indices == "/")
					}
					return

				case catchAll:
					// Save param value
					ps = append(ps, Param{Key: n.path[2:], Value: path})

					handle = n.handle
					return

				default:
					panic("invalid node type")
				}
			}
		} else if path == prefix {
			// We should have reached the node containing the handle.
			// Check if this node has a handle registered.
			if handle = n.handle; handle != nil {
				return
			}

			// If there is no handle for this route, but this route has a
			// wildcard child, there must be a handle for this path with an
			// additional trailing slash.
			if path == "/" && n.wildChild && n.nType != root {
				tsr = true
				return
			}

			// No handle found. Check if a handle for this path + a
			// trailing slash exists for trailing slash recommendation.
			for i, c := range []byte(n.indices) {
				if c == '/' {
					n = n.children[i]
					tsr = (len(n.path) == 1 && n.handle != nil) ||
						(n.nType == catchAll && n.children[0].handle != nil)
					return
				}
			}

			return
		}

		// Nothing found. We can recommend to redirect to the same URL with an
		// extra trailing slash if a leaf exists for that path.
		tsr = path == "/" ||
			(len(prefix) == len(path)+1 && prefix[len(path)] == '/' &&
				path == prefix[:len(prefix)-1] && n.handle != nil)
		return
	}
}

// findCaseInsensitivePath makes a case-insensitive lookup of the given path
// and tries to find a handler, rewriting the path with the canonical casing
// stored in the tree as it descends. Parameter values are passed through
// unchanged. It can optionally also fix trailing slashes. It returns the
// case-corrected path and a bool indicating whether the lookup was
// successful.
func (n *node) findCaseInsensitivePath(path string, fixTrailingSlash bool) ([]byte, bool) {
	buf := make([]byte, 0, len(path)+1)
	return n.ciPath(path, buf, fixTrailingSlash)
}

func (n *node) ciPath(path string, out []byte, fixTrailingSlash bool) ([]byte, bool) {
	prefix := n.path

	if len(path) < len(prefix) {
		// The remaining path is shorter than this node; the only possible fix
		// is an added trailing slash.
		if fixTrailingSlash && n.handle != nil && strings.EqualFold(path+"/", prefix) {
			return append(out, prefix...), true
		}
		return nil, false
	}

	if !strings.EqualFold(path[:len(prefix)], prefix) {
		return nil, false
	}

	// Use the canonical casing from the tree, not the request.
	out = append(out, prefix...)
	path = path[len(prefix):]

	if len(path) == 0 {
		if n.handle != nil {
			return out, true
		}

		// No handle found. Try to fix the path by adding a trailing slash.
		if fixTrailingSlash {
			for i := 0; i < len(n.indices); i++ {
				if n.indices[i] != '/' {
					continue
				}
				child := n.children[i]
				if (len(child.path) == 1 && child.handle != nil) ||
					(child.nType == catchAll && child.children[0].handle != nil) {
					return append(out, '/'), true
				}
			}
		}
		return nil, false
	}

	if !n.wildChild {
		// Unlike exact matching there is no first-byte shortcut: several
		// children may fold to the same byte, so try each in turn.
		for _, child := range n.children {
			if fixed, found := child.ciPath(path, out, fixTrailingSlash); found {
				return fixed, true
			}
		}

		// Nothing found. Try to fix the path by removing a trailing slash.
		if fixTrailingSlash && path == "/" && n.handle != nil {
			return out, true
		}
		return nil, false
	}

	child := n.children[0]
	switch child.nType {
	case param:
		// Find param end (either '/' or path end)
		end := 0
		for end < len(path) && path[end] != '/' {
			end++
		}

		// Parameter values keep the casing of the request.
		out = append(out, path[:end]...)

		if end < len(path) {
			if len(child.children) > 0 {
				return child.children[0].ciPath(path[end:], out, fixTrailingSlash)
			}

			// ... but we can't
			if fixTrailingSlash && len(path) == end+1 && child.handle != nil {
				return out, true
			}
			return nil, false
		}

		if child.handle != nil {
			return out, true
		}
		if fixTrailingSlash && len(child.children) == 1 {
			grandchild := child.children[0]
			if grandchild.path == "/" && grandchild.handle != nil {
				return append(out, '/'), true
			}
		}
		return nil, false

	case catchAll:
		return append(out, path...), true

	default:
		panic("invalid node type")
	}
}
