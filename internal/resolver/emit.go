package resolver

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// WriteDependencyFile renders the machine-readable dependency list
// the module compiler loads to resolve imports: a JSON object mapping
// serialized module paths to interface file paths.
func WriteDependencyFile(resolution Resolution) ([]byte, error) {
	return json.MarshalIndent(map[string]string(resolution), "", "  ")
}

// WriteBuildFragment renders the Ninja dyndep fragment the build
// driver consumes: two lines naming the object this module produces
// and the interface files it depends on.
func WriteBuildFragment(objectPath string, resolution Resolution) string {
	ifaces := make([]string, 0, len(resolution))
	for _, p := range resolution {
		ifaces = append(ifaces, p)
	}
	sort.Strings(ifaces)

	var b strings.Builder
	b.WriteString("ninja_dyndep_version = 1\n")
	fmt.Fprintf(&b, "build %s: dyndep | %s\n", objectPath, strings.Join(ifaces, " "))
	return b.String()
}
