package testutils_test

import (
	"testing"

	"github.com/aretw0/alttab/internal/testutils"
	"github.com/aretw0/alttab/pkg/ports"
)

func TestFakeGateway_Contract(t *testing.T) {
	gw := testutils.NewFakeGateway("one", "two", "three")
	ports.RunGatewayContract(t, ports.GatewayHarness[string]{
		Gateway:     gw,
		Live:        []string{"one", "two", "three"},
		EmitFocus:   gw.EmitFocus,
		EmitRelease: gw.EmitRelease,
		Focused:     gw.Focused,
	})
}
