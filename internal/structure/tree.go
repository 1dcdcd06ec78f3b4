// Package structure reconstructs a role's directory layout from a flat list
// of relative path strings and renders it as an ASCII tree.
package structure

import (
	"path/filepath"
	"sort"
	"strings"
)

// pathSegmentSeparator joins and splits role-relative path segments.
const pathSegmentSeparator = "/"

// Node represents one directory level of a role layout. It holds named child
// directories in the order they were first encountered and a set of file
// names owned directly by this level. A name never appears both as a
// directory and as a file at the same level; the directory wins.
type Node struct {
	directoryNames []string
	directories    map[string]*Node
	fileNames      map[string]struct{}
}

// NewNode returns an empty directory node.
func NewNode() *Node {
	return &Node{
		directories: make(map[string]*Node),
		fileNames:   make(map[string]struct{}),
	}
}

// IsEmpty reports whether the node owns neither directories nor files.
func (node *Node) IsEmpty() bool {
	return len(node.directoryNames) == 0 && len(node.fileNames) == 0
}

// Directory returns the child directory with the provided name, creating it
// when absent. Creation preserves first-seen insertion order and removes a
// conflicting file entry of the same name.
func (node *Node) Directory(directoryName string) *Node {
	childNode, exists := node.directories[directoryName]
	if exists {
		return childNode
	}
	childNode = NewNode()
	node.directories[directoryName] = childNode
	node.directoryNames = append(node.directoryNames, directoryName)
	delete(node.fileNames, directoryName)
	return childNode
}

// AddFile records a file name owned by this node. Duplicates collapse into a
// single entry, and a name already present as a directory is ignored.
func (node *Node) AddFile(fileName string) {
	if _, isDirectory := node.directories[fileName]; isDirectory {
		return
	}
	node.fileNames[fileName] = struct{}{}
}

// DirectoryNames returns the child directory names in insertion order.
func (node *Node) DirectoryNames() []string {
	names := make([]string, len(node.directoryNames))
	copy(names, node.directoryNames)
	return names
}

// FileNames returns the node's file names sorted lexicographically.
func (node *Node) FileNames() []string {
	names := make([]string, 0, len(node.fileNames))
	for fileName := range node.fileNames {
		names = append(names, fileName)
	}
	sort.Strings(names)
	return names
}

// HasFile reports whether the node directly owns the named file.
func (node *Node) HasFile(fileName string) bool {
	_, exists := node.fileNames[fileName]
	return exists
}

// HasDirectory reports whether the node owns a child directory with the name.
func (node *Node) HasDirectory(directoryName string) bool {
	_, exists := node.directories[directoryName]
	return exists
}

// BuildTree converts a flat sequence of slash-delimited relative paths into a
// nested directory tree. A leading segment equal to roleName is stripped so
// role-root-relative paths and role-internal paths normalize identically.
// Empty segments are discarded, so artifacts like trailing slashes on zip
// directory entries contribute directory nodes but no file entries. The
// function is total: any sequence of strings produces a valid tree.
func BuildTree(paths []string, roleName string) *Node {
	rootNode := NewNode()
	for _, pathEntry := range paths {
		segments := strings.Split(filepath.ToSlash(pathEntry), pathSegmentSeparator)
		if len(segments) > 1 && segments[0] == roleName {
			segments = segments[1:]
		}
		currentNode := rootNode
		for segmentIndex, segment := range segments {
			if segment == "" {
				continue
			}
			if segmentIndex == len(segments)-1 {
				currentNode.AddFile(segment)
				continue
			}
			currentNode = currentNode.Directory(segment)
		}
	}
	return rootNode
}
