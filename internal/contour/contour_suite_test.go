package contour_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestContour(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contour Suite")
}
