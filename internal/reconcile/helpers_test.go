package reconcile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// inventoryRow builds a 19-field export line with the given values at the
// default column positions.
func inventoryRow(name, sale, purchase, boxes, units, loose, active string) string {
	fields := make([]string, 19)
	fields[0] = name
	fields[6] = sale
	fields[8] = purchase
	fields[10] = boxes
	fields[11] = units
	fields[12] = loose
	fields[18] = active
	return strings.Join(fields, "\t")
}

func writeExport(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventario.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}
