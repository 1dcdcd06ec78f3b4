package structure

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"
)

// RenderTree performs a depth-first traversal of the tree and returns one
// output line per entry. Directories are emitted in insertion order before
// the node's files, which are emitted sorted. The last entry at each level
// receives the terminal connector and switches its descendants to blank
// padding. The first level is rendered without connectors, matching the
// conventional role-layout listing. The tree is never mutated, so the same
// node renders identically on repeated calls.
func RenderTree(rootNode *Node) []string {
	if rootNode == nil {
		return nil
	}
	var renderedLines []string
	renderLevel(rootNode, "", true, &renderedLines)
	return renderedLines
}

// renderLevel appends the lines for one directory level to the accumulator.
func renderLevel(node *Node, indent string, isRootLevel bool, renderedLines *[]string) {
	directoryNames := node.DirectoryNames()
	fileNames := node.FileNames()

	for directoryIndex, directoryName := range directoryNames {
		isLastEntry := directoryIndex == len(directoryNames)-1 && len(fileNames) == 0

		var childIndent string
		if isRootLevel {
			*renderedLines = append(*renderedLines, directoryName+directorySuffix)
			childIndent = treeLastPadding
		} else {
			connector := treeBranchConnector
			padding := treeBranchPadding
			if isLastEntry {
				connector = treeLastConnector
				padding = treeLastPadding
			}
			*renderedLines = append(*renderedLines, indent+connector+directoryName+directorySuffix)
			childIndent = indent + padding
		}

		renderLevel(node.directories[directoryName], childIndent, false, renderedLines)
	}

	for fileIndex, fileName := range fileNames {
		if isRootLevel {
			*renderedLines = append(*renderedLines, fileName)
			continue
		}
		connector := treeBranchConnector
		if fileIndex == len(fileNames)-1 {
			connector = treeLastConnector
		}
		*renderedLines = append(*renderedLines, indent+connector+fileName)
	}
}
