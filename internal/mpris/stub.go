//go:build !linux

package mpris

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/transport"
)

// Surface rejects every action on non-Linux platforms.
type Surface struct{}

// New returns a surface with no OS integration.
func New(_ playback.Service) *Surface {
	return &Surface{}
}

// SetActionHandler always fails with transport.ErrUnsupported.
func (s *Surface) SetActionHandler(action transport.Action, _ transport.Handler) error {
	return fmt.Errorf("%w: %s", transport.ErrUnsupported, action)
}

// Start is a no-op on non-Linux platforms.
func (s *Surface) Start(_ *log.Logger) {}

// Close is a no-op on non-Linux platforms.
func (s *Surface) Close() error {
	return nil
}
