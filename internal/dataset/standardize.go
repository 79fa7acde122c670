/**
 * @description
 * Column label standardization: the first pipeline stage.
 * Pure and total — never fails, never touches cell content.
 */

package dataset

import "strings"

// StandardizeColumns lower-cases every column label, trims surrounding
// whitespace, and replaces internal spaces with underscores.
func StandardizeColumns(t *Table) {
	t.RenameColumns(func(name string) string {
		name = strings.TrimSpace(strings.ToLower(name))
		return strings.ReplaceAll(name, " ", "_")
	})
}
