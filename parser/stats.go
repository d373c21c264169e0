package parser

import "fmt"

// DocumentStats contains statistical information about a RAML document
type DocumentStats struct {
	ResourceCount     int // Number of resources, including nested ones
	MethodCount       int // Total number of methods across all resources
	TraitCount        int // Number of declared traits
	ResourceTypeCount int // Number of declared resource types
}

// GetDocumentStats returns statistics for a parsed RAML document
func GetDocumentStats(root *RootNode) DocumentStats {
	stats := DocumentStats{}
	if root == nil {
		return stats
	}
	stats.TraitCount = len(root.Traits)
	stats.ResourceTypeCount = len(root.ResourceTypes)
	countResources(root.Resources, &stats)
	return stats
}

func countResources(resources []*ResourceNode, stats *DocumentStats) {
	for _, r := range resources {
		stats.ResourceCount++
		stats.MethodCount += len(r.Methods)
		countResources(r.Resources, stats)
	}
}

// FormatBytes formats a byte size into a human-readable string using binary units
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
