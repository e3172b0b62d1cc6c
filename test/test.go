package test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Test runs the ginkgo specs of the calling package, naming the suite after it.
func Test(t *testing.T) {
	RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, callerSuite())
}

// callerSuite derives "patients" from "github.com/.../patients_test.TestSuite".
func callerSuite() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return "suite"
	}
	name := runtime.FuncForPC(pc).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSuffix(name, "_test")
}
