package analyzer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/braunma/switchport-audit/internal/constants"
)

var findingNamespace = uuid.MustParse(constants.FindingNamespace)

// findingID derives a stable ID so repeated runs on one snapshot agree
func findingID(kind string, parts ...string) string {
	name := kind + "|" + strings.Join(parts, "|")
	return uuid.NewSHA1(findingNamespace, []byte(name)).String()
}
