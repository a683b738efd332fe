package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests run from the module root so relative paths (logs/, sela.db) resolve the same way
	// as for the server binary. blank-import it from any _test.go:
	//
	//   import (
	//     _ "liyu1981.xyz/sela-weight-tracker/pkg/testing"
	//   )
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}
